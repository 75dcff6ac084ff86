package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jaeyun/matzip-map/internal/aggregate"
	"github.com/jaeyun/matzip-map/internal/model"
	"github.com/jaeyun/matzip-map/internal/queue"
	"github.com/jaeyun/matzip-map/internal/repository"
)

// RestaurantHandler bundles dependencies for the restaurant endpoints.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
	Users       *repository.UserRepo
	// PublishEvents enables review.created broker notifications.
	PublishEvents bool
}

func NewRestaurantHandler(r *repository.RestaurantRepo, u *repository.UserRepo, publish bool) *RestaurantHandler {
	return &RestaurantHandler{Restaurants: r, Users: u, PublishEvents: publish}
}

// ----- DTOs -----

// restaurantReq is the create/update body. The original clients send
// camelCase for userId and kakaoPlaceId and snake_case for model_url,
// so the tags mirror that exactly.
type restaurantReq struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Rating       float64 `json:"rating"`
	Review       *string `json:"review"`
	UserID       int64   `json:"userId"`
	KakaoPlaceID *string `json:"kakaoPlaceId"`
	Category     *string `json:"category"`
	ModelURL     *string `json:"model_url"`
}

// validRating accepts the discrete half-star scale 1.0, 1.5, ..., 5.0.
func validRating(r float64) bool {
	doubled := r * 2
	return r >= 1.0 && r <= 5.0 && doubled == math.Trunc(doubled)
}

func (req restaurantReq) toModel() model.Restaurant {
	return model.Restaurant{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Lat:          req.Lat,
		Lng:          req.Lng,
		Rating:       req.Rating,
		Review:       req.Review,
		UserID:       req.UserID,
		KakaoPlaceID: req.KakaoPlaceID,
		Category:     req.Category,
		ModelURL:     req.ModelURL,
	}
}

// List serves GET /api/restaurants in its three modes: ?userId= returns
// the caller's own rows ungrouped, ?aggregated=true returns place
// groups (optionally restricted by ?bounds=lat1,lng1,lat2,lng2), and no
// parameters returns the raw rows newest first.
func (h *RestaurantHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if uid := c.QueryParam("userId"); uid != "" {
		userID, err := strconv.ParseInt(uid, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid userId"})
		}
		rows, err := h.Restaurants.ListByOwner(ctx, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
		}
		return c.JSON(http.StatusOK, rows)
	}

	var bounds *aggregate.Bounds
	if bs := c.QueryParam("bounds"); bs != "" {
		b, err := aggregate.ParseBounds(bs)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bounds", "details": err.Error()})
		}
		bounds = &b
	}

	rows, err := h.Restaurants.List(ctx, bounds)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurants"})
	}
	if c.QueryParam("aggregated") == "true" {
		return c.JSON(http.StatusOK, aggregate.Group(rows))
	}
	return c.JSON(http.StatusOK, rows)
}

// Create serves POST /api/restaurants.
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !validRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1.0 and 5.0 in half steps"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Restaurants.Create(ctx, req.toModel())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create restaurant"})
	}

	if h.PublishEvents {
		go h.publishCreated(id, req)
	}

	return c.JSON(http.StatusOK, echo.Map{"id": id, "success": true})
}

func (h *RestaurantHandler) publishCreated(id int64, req restaurantReq) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := queue.ReviewCreatedEvent{
		RestaurantID: id,
		Name:         req.Name,
		Address:      req.Address,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Rating:       req.Rating,
		UserID:       req.UserID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if req.KakaoPlaceID != nil {
		ev.KakaoPlaceID = *req.KakaoPlaceID
	}
	if u, err := h.Users.GetByID(ctx, req.UserID); err == nil {
		ev.Nickname = u.Nickname
	}
	_ = queue.PublishReviewCreated(ctx, ev) // broker outage never fails the request
}

// Update serves PUT /api/restaurants/:id. Only the owner may update.
func (h *RestaurantHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
	}
	if !validRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1.0 and 5.0 in half steps"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if existing.UserID != req.UserID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the owner can update this restaurant"})
	}

	m := req.toModel()
	m.ID = id
	if err := h.Restaurants.Update(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update restaurant"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete serves DELETE /api/restaurants/:id/:userId. Only the owner may
// delete; the acting user travels in the path, as the original clients
// send it.
func (h *RestaurantHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid userId"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load restaurant"})
	}
	if existing.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the owner can delete this restaurant"})
	}

	if err := h.Restaurants.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete restaurant"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
