package model

import "time"

// Restaurant mirrors one row of the 'restaurants' table: a single user's
// review of a single place. Nullable columns are pointers so that absent
// values round-trip as JSON null, matching what the map client expects.
type Restaurant struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Rating       float64   `json:"rating"`
	Review       *string   `json:"review"`
	UserID       int64     `json:"user_id"`
	Nickname     string    `json:"nickname,omitempty"` // joined from users, not a column
	KakaoPlaceID *string   `json:"kakao_place_id"`
	Category     *string   `json:"category"`
	ModelURL     *string   `json:"model_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
