// Package service holds clients for external collaborators: the Kakao
// local-search API and the message broker publisher.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jaeyun/matzip-map/internal/geo"
)

// KakaoPlace is one document of a keyword search response. Kakao sends
// coordinates as strings: x is longitude, y is latitude.
type KakaoPlace struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	CategoryName    string `json:"category_name"`
	Phone           string `json:"phone"`
	X               string `json:"x"`
	Y               string `json:"y"`
}

type keywordResponse struct {
	Documents []KakaoPlace `json:"documents"`
}

// KakaoClient calls the keyword search endpoint with the REST API key.
// BaseURL is configurable so tests can point it at a local server.
type KakaoClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewKakaoClient(baseURL, apiKey string) *KakaoClient {
	return &KakaoClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchKeyword proxies a free-text query and returns the raw upstream
// JSON body, so the handler can forward it to the browser unchanged.
func (k *KakaoClient) SearchKeyword(ctx context.Context, query string) ([]byte, error) {
	u := fmt.Sprintf("%s?query=%s", k.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "KakaoAK "+k.APIKey)

	resp, err := k.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao API error: %d - %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// ParseDocuments extracts the candidate list from a raw response body.
func ParseDocuments(body []byte) ([]KakaoPlace, error) {
	var r keywordResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return r.Documents, nil
}

// BestMatch picks the candidate closest to the reference coordinate by
// great-circle distance, not the upstream ranking. An empty candidate
// list is a legitimate "no match" and returns ok=false. Ties keep the
// earlier candidate; unparseable coordinates are skipped.
func BestMatch(candidates []KakaoPlace, refLat, refLng float64) (KakaoPlace, bool) {
	best := KakaoPlace{}
	bestDist := 0.0
	found := false
	for _, c := range candidates {
		lat, err1 := strconv.ParseFloat(c.Y, 64)
		lng, err2 := strconv.ParseFloat(c.X, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		d := geo.DistanceKM(refLat, refLng, lat, lng)
		if !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}
