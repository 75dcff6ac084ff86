// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewCreatedEvent is published when a restaurant review is
// successfully saved. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReviewCreatedEvent struct {
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Rating       float64 `json:"rating"`
	UserID       int64   `json:"user_id"`
	Nickname     string  `json:"nickname"`
	KakaoPlaceID string  `json:"kakao_place_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
