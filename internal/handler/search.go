package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jaeyun/matzip-map/internal/service"
)

// SearchHandler proxies free-text place searches to the Kakao keyword
// API. The upstream response body is forwarded verbatim; picking the
// closest candidate happens on the client (see internal/mapview and
// service.BestMatch).
type SearchHandler struct {
	Kakao  *service.KakaoClient
	APIKey string
}

func NewSearchHandler(kakao *service.KakaoClient, apiKey string) *SearchHandler {
	return &SearchHandler{Kakao: kakao, APIKey: apiKey}
}

type searchReq struct {
	Query string   `json:"query"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
}

// SearchPlace serves POST /api/search-place.
func (h *SearchHandler) SearchPlace(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Query parameter is required"})
	}
	if h.APIKey == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Kakao API key not configured",
			"details": "KAKAO_API_KEY environment variable is missing",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	body, err := h.Kakao.SearchKeyword(ctx, req.Query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Failed to search place",
			"details": err.Error(),
		})
	}
	return c.JSONBlob(http.StatusOK, body)
}
