package model

import "time"

// PlaceGroup is the derived aggregate the map renders one marker for.
// It is recomputed on every aggregated query and never stored. Reviews
// are ordered by creation time descending; the representative fields
// (name, address, lat, lng, category) come from the most recently
// created member.
type PlaceGroup struct {
	PlaceKey    string       `json:"place_key"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	AvgRating   float64      `json:"avg_rating"`
	ReviewCount int          `json:"review_count"`
	Category    *string      `json:"category"`
	UpdatedAt   time.Time    `json:"updated_at"` // most recent member update
	Reviews     []Restaurant `json:"reviews"`
}
