// Package aggregate folds individual restaurant reviews into place
// groups for map rendering. The original worker did this with one
// GROUP BY query plus one member query per group; here the repository
// runs a single query and this package does the fold in memory, which
// keeps the grouping rules in plain Go where they can be tested.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jaeyun/matzip-map/internal/model"
)

// ErrBadBounds is returned when a bounds string does not have exactly
// four comma-separated numeric fields. Handlers translate it into an
// HTTP 400 response.
var ErrBadBounds = errors.New("malformed bounds")

// Bounds is a normalized geographic rectangle: Min* <= Max* always holds.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// ParseBounds parses a "lat1,lng1,lat2,lng2" query value. The two
// corners may arrive in either diagonal order; the result is normalized
// via min/max so callers never have to care which corner came first.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("%w: want 4 fields, got %d", ErrBadBounds, len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("%w: field %d is not numeric", ErrBadBounds, i+1)
		}
		vals[i] = f
	}
	b := Bounds{
		MinLat: min(vals[0], vals[2]),
		MaxLat: max(vals[0], vals[2]),
		MinLng: min(vals[1], vals[3]),
		MaxLng: max(vals[1], vals[3]),
	}
	return b, nil
}

// Contains reports whether the point lies inside the rectangle,
// boundary included.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// GroupKey returns the identity a review is grouped under: the Kakao
// place id when the review carries one, otherwise a synthetic key built
// from the row's own primary id. Reviews without a place id therefore
// never merge with anything else, even at an identical address. This
// asymmetry is deliberate and must not be replaced by fuzzy matching.
func GroupKey(r model.Restaurant) string {
	if r.KakaoPlaceID != nil && *r.KakaoPlaceID != "" {
		return *r.KakaoPlaceID
	}
	return "id:" + strconv.FormatInt(r.ID, 10)
}

// Group folds review rows into place groups. Members inside a group are
// ordered by creation time descending (id descending on ties); the
// representative name/address/lat/lng and the category come from the
// most recently created member. Groups are ordered by their most recent
// member update timestamp, newest first, stable on ties.
func Group(rows []model.Restaurant) []model.PlaceGroup {
	byKey := make(map[string]*model.PlaceGroup, len(rows))
	order := make([]string, 0, len(rows))

	for _, r := range rows {
		key := GroupKey(r)
		g, ok := byKey[key]
		if !ok {
			g = &model.PlaceGroup{PlaceKey: key}
			byKey[key] = g
			order = append(order, key)
		}
		g.Reviews = append(g.Reviews, r)
	}

	out := make([]model.PlaceGroup, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		sort.SliceStable(g.Reviews, func(i, j int) bool {
			a, b := g.Reviews[i], g.Reviews[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})

		newest := g.Reviews[0]
		g.Name = newest.Name
		g.Address = newest.Address
		g.Lat = newest.Lat
		g.Lng = newest.Lng
		g.Category = newest.Category

		var sum float64
		for _, r := range g.Reviews {
			sum += r.Rating
			if r.UpdatedAt.After(g.UpdatedAt) {
				g.UpdatedAt = r.UpdatedAt
			}
		}
		g.ReviewCount = len(g.Reviews)
		g.AvgRating = sum / float64(len(g.Reviews))

		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
