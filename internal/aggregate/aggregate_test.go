package aggregate

import (
	"errors"
	"testing"
	"time"

	"github.com/jaeyun/matzip-map/internal/model"
)

func strp(s string) *string { return &s }

func row(id int64, kakaoID string, rating float64, created time.Time) model.Restaurant {
	r := model.Restaurant{
		ID:        id,
		Name:      "place",
		Address:   "addr",
		Lat:       36.48,
		Lng:       127.29,
		Rating:    rating,
		UserID:    1,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if kakaoID != "" {
		r.KakaoPlaceID = strp(kakaoID)
	}
	return r
}

func TestGroupMergesSameKakaoPlaceID(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []model.Restaurant{
		row(1, "k-100", 3.0, t0),
		row(2, "k-100", 4.0, t0.Add(time.Hour)),
		row(3, "k-100", 5.0, t0.Add(2*time.Hour)),
	}
	// drift in name/address must not split the group
	rows[0].Name = "Gimbap Heaven"
	rows[1].Name = "gimbap heaven (branch)"
	rows[2].Address = "different street 12"

	groups := Group(rows)
	if len(groups) != 1 {
		t.Fatalf("want 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.PlaceKey != "k-100" {
		t.Errorf("place key = %q, want k-100", g.PlaceKey)
	}
	if g.ReviewCount != 3 {
		t.Errorf("review_count = %d, want 3", g.ReviewCount)
	}
	if g.AvgRating != 4.0 {
		t.Errorf("avg_rating = %v, want exactly 4.0", g.AvgRating)
	}
}

func TestGroupNeverMergesWithoutKakaoPlaceID(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Same name, address, lat, lng — still two groups, because neither
	// row carries a place id.
	rows := []model.Restaurant{
		row(10, "", 2.0, t0),
		row(11, "", 5.0, t0),
	}
	groups := Group(rows)
	if len(groups) != 2 {
		t.Fatalf("want 2 groups, got %d", len(groups))
	}
	keys := map[string]bool{groups[0].PlaceKey: true, groups[1].PlaceKey: true}
	if !keys["id:10"] || !keys["id:11"] {
		t.Errorf("fallback keys = %v, want id:10 and id:11", keys)
	}
}

func TestGroupRepresentativeAndCategoryFromNewestMember(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := row(1, "k-7", 3.0, t0)
	older.Category = strp("korean")
	newer := row(2, "k-7", 4.0, t0.Add(time.Hour))
	newer.Category = strp("cafe")
	newer.Name = "renamed"

	groups := Group([]model.Restaurant{older, newer})
	if len(groups) != 1 {
		t.Fatalf("want 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Category == nil || *g.Category != "cafe" {
		t.Errorf("category = %v, want cafe (most recently created member)", g.Category)
	}
	if g.Name != "renamed" {
		t.Errorf("name = %q, want representative from newest member", g.Name)
	}
	if g.Reviews[0].ID != 2 || g.Reviews[1].ID != 1 {
		t.Errorf("members not ordered by created_at desc: %d, %d", g.Reviews[0].ID, g.Reviews[1].ID)
	}
}

func TestGroupSortedByMostRecentUpdate(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := row(1, "k-a", 3.0, t0)
	b := row(2, "k-b", 3.0, t0.Add(time.Minute))
	// a's group gets a later update through a second member
	a2 := row(3, "k-a", 4.0, t0.Add(2*time.Minute))

	groups := Group([]model.Restaurant{a, b, a2})
	if len(groups) != 2 {
		t.Fatalf("want 2 groups, got %d", len(groups))
	}
	if groups[0].PlaceKey != "k-a" || groups[1].PlaceKey != "k-b" {
		t.Errorf("order = %q, %q; want k-a first", groups[0].PlaceKey, groups[1].PlaceKey)
	}
}

func TestParseBoundsOrderIndependent(t *testing.T) {
	b1, err := ParseBounds("36.5,127.3,36.4,127.2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b2, err := ParseBounds("36.4,127.2,36.5,127.3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b1 != b2 {
		t.Errorf("corner order changed result: %+v vs %+v", b1, b2)
	}
	if b1.MinLat != 36.4 || b1.MaxLat != 36.5 || b1.MinLng != 127.2 || b1.MaxLng != 127.3 {
		t.Errorf("not normalized: %+v", b1)
	}
	if !b1.Contains(36.45, 127.25) {
		t.Errorf("point inside rectangle reported outside")
	}
	if b1.Contains(36.45, 127.35) {
		t.Errorf("point outside rectangle reported inside")
	}
}

func TestParseBoundsRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{"abc", "1,2,3", "1,2,3,4,5", "1,2,x,4", ""} {
		if _, err := ParseBounds(s); !errors.Is(err, ErrBadBounds) {
			t.Errorf("ParseBounds(%q) err = %v, want ErrBadBounds", s, err)
		}
	}
}
