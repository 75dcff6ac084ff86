package repository

import (
	"context"
	"database/sql"

	"github.com/jaeyun/matzip-map/internal/aggregate"
	"github.com/jaeyun/matzip-map/internal/model"
)

type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

// selectCols joins users so every review row carries the submitter's
// nickname. The original worker ran one query per group to attach
// nicknames; a single join plus the in-memory fold in the aggregate
// package yields the same output without the N+1.
const selectCols = `SELECT r.id, r.name, r.address, r.lat, r.lng, r.rating, r.review,
	r.user_id, COALESCE(u.nickname, ''), r.kakao_place_id, r.category, r.model_url,
	r.created_at, r.updated_at
	FROM restaurants r LEFT JOIN users u ON u.id = r.user_id`

// List returns review rows ordered by creation time descending (id
// descending breaks ties within one timestamp). A non-nil bounds
// restricts rows to the normalized rectangle.
func (r *RestaurantRepo) List(ctx context.Context, b *aggregate.Bounds) ([]model.Restaurant, error) {
	q := selectCols
	args := []any{}
	if b != nil {
		q += " WHERE r.lat BETWEEN ? AND ? AND r.lng BETWEEN ? AND ?"
		args = append(args, b.MinLat, b.MaxLat, b.MinLng, b.MaxLng)
	}
	q += " ORDER BY r.created_at DESC, r.id DESC"
	return r.queryRows(ctx, q, args...)
}

// ListByOwner returns one row per review belonging to the given user,
// ungrouped, for the "my restaurants" view. Bounds never apply here.
func (r *RestaurantRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Restaurant, error) {
	q := selectCols + " WHERE r.user_id = ? ORDER BY r.created_at DESC, r.id DESC"
	return r.queryRows(ctx, q, userID)
}

// GetByID fetches a single review row. ErrNotFound when absent.
func (r *RestaurantRepo) GetByID(ctx context.Context, id int64) (model.Restaurant, error) {
	rows, err := r.queryRows(ctx, selectCols+" WHERE r.id = ? LIMIT 1", id)
	if err != nil {
		return model.Restaurant{}, err
	}
	if len(rows) == 0 {
		return model.Restaurant{}, ErrNotFound
	}
	return rows[0], nil
}

// Create inserts a review row and returns its id.
func (r *RestaurantRepo) Create(ctx context.Context, m model.Restaurant) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO restaurants (name, address, lat, lng, rating, review, user_id, kakao_place_id, category, model_url)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		m.Name, m.Address, m.Lat, m.Lng, m.Rating, m.Review, m.UserID, m.KakaoPlaceID, m.Category, m.ModelURL)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the mutable fields of a review row. Ownership is
// checked by the caller against GetByID; this only touches the row.
func (r *RestaurantRepo) Update(ctx context.Context, m model.Restaurant) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE restaurants
		 SET name=?, address=?, lat=?, lng=?, rating=?, review=?, kakao_place_id=?, category=?, model_url=?,
		     updated_at=CURRENT_TIMESTAMP
		 WHERE id=?`,
		m.Name, m.Address, m.Lat, m.Lng, m.Rating, m.Review, m.KakaoPlaceID, m.Category, m.ModelURL, m.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes a review row.
func (r *RestaurantRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id=?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RestaurantRepo) queryRows(ctx context.Context, q string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Restaurant, 0, 16)
	for rows.Next() {
		var m model.Restaurant
		var review, kakaoID, category, modelURL sql.NullString
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Address, &m.Lat, &m.Lng, &m.Rating, &review,
			&m.UserID, &m.Nickname, &kakaoID, &category, &modelURL,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Review = nullableString(review)
		m.KakaoPlaceID = nullableString(kakaoID)
		m.Category = nullableString(category)
		m.ModelURL = nullableString(modelURL)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
