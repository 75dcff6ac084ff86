package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jaeyun/matzip-map/internal/model"
	"github.com/jaeyun/matzip-map/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its id. The nickname is stored as
// given (it doubles as the pseudo salt of the legacy hash scheme, so it
// must not be normalized after the fact).
func (r *UserRepo) Create(ctx context.Context, nickname, password, scheme string, cost int) (int64, error) {
	nickname = strings.TrimSpace(nickname)
	hash, err := utils.HashPassword(password, nickname, scheme, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (nickname, password_hash) VALUES (?,?)",
		nickname, hash)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrNicknameExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByNickname fetches a user by nickname. ErrNotFound when absent.
func (r *UserRepo) GetByNickname(ctx context.Context, nickname string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nickname, password_hash, created_at FROM users WHERE nickname=? LIMIT 1",
		strings.TrimSpace(nickname)).
		Scan(&u.ID, &u.Nickname, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id. ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nickname, password_hash, created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Nickname, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// isDuplicate recognizes a unique-constraint violation on MySQL (error
// 1062) and on SQLite, which backs the tests.
func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique")
}
