package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jaeyun/matzip-map/internal/aggregate"
	"github.com/jaeyun/matzip-map/internal/model"
	"github.com/jaeyun/matzip-map/internal/utils"
)

func seedUser(t *testing.T, db *sql.DB, nickname string) int64 {
	t.Helper()
	id, err := NewUserRepo(db).Create(context.Background(), nickname, "pw", utils.SchemeSHA256, 0)
	if err != nil {
		t.Fatalf("seed user %s: %v", nickname, err)
	}
	return id
}

func seedRestaurant(t *testing.T, repo *RestaurantRepo, userID int64, name string, lat, lng float64) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), model.Restaurant{
		Name: name, Address: "addr " + name, Lat: lat, Lng: lng, Rating: 4.5, UserID: userID,
	})
	if err != nil {
		t.Fatalf("seed restaurant %s: %v", name, err)
	}
	return id
}

func TestRestaurantCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	ctx := context.Background()
	uid := seedUser(t, db, "eater")

	review := "great broth"
	kakaoID := "k-42"
	id, err := repo.Create(ctx, model.Restaurant{
		Name: "Noodle House", Address: "1 Soup St", Lat: 36.48, Lng: 127.29,
		Rating: 4.5, Review: &review, UserID: uid, KakaoPlaceID: &kakaoID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Noodle House" || got.Rating != 4.5 {
		t.Errorf("row = %+v", got)
	}
	if got.Review == nil || *got.Review != review {
		t.Errorf("review = %v, want %q", got.Review, review)
	}
	if got.KakaoPlaceID == nil || *got.KakaoPlaceID != kakaoID {
		t.Errorf("kakao_place_id = %v, want %q", got.KakaoPlaceID, kakaoID)
	}
	if got.Category != nil || got.ModelURL != nil {
		t.Errorf("absent optional fields should scan as nil: %+v", got)
	}
	if got.Nickname != "eater" {
		t.Errorf("nickname = %q, want joined user nickname", got.Nickname)
	}
}

func TestRestaurantListBounded(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	ctx := context.Background()
	uid := seedUser(t, db, "scout")

	inside := seedRestaurant(t, repo, uid, "inside", 36.48, 127.29)
	seedRestaurant(t, repo, uid, "north", 38.00, 127.29)
	seedRestaurant(t, repo, uid, "west", 36.48, 125.00)

	b, err := aggregate.ParseBounds("36.4,127.2,36.5,127.3")
	if err != nil {
		t.Fatalf("parse bounds: %v", err)
	}
	rows, err := repo.List(ctx, &b)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != inside {
		t.Fatalf("bounded list = %+v, want only the inside row", rows)
	}

	all, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("unbounded list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unbounded list has %d rows, want 3", len(all))
	}
	// newest first; ids tie-break within one timestamp
	if all[0].Name != "west" {
		t.Errorf("first row = %q, want most recently created", all[0].Name)
	}
}

func TestRestaurantListByOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedRestaurant(t, repo, alice, "a1", 36.1, 127.1)
	seedRestaurant(t, repo, alice, "a2", 36.2, 127.2)
	seedRestaurant(t, repo, bob, "b1", 36.3, 127.3)

	rows, err := repo.ListByOwner(ctx, alice)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("owner rows = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.UserID != alice {
			t.Errorf("row %q belongs to user %d", r.Name, r.UserID)
		}
	}
}

func TestRestaurantUpdateAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewRestaurantRepo(db)
	ctx := context.Background()
	uid := seedUser(t, db, "editor")
	id := seedRestaurant(t, repo, uid, "before", 36.0, 127.0)

	row, _ := repo.GetByID(ctx, id)
	row.Name = "after"
	row.Rating = 2.5
	if err := repo.Update(ctx, row); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetByID(ctx, id)
	if got.Name != "after" || got.Rating != 2.5 {
		t.Errorf("update not applied: %+v", got)
	}

	if err := repo.Update(ctx, model.Restaurant{ID: 9999, Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown id err = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}
