package model

import "time"

// User represents an account record as stored in the `users` table.
// The password hash never leaves the repository/handler boundary;
// handlers expose a sanitized view through PublicUser.
type User struct {
	ID           int64     // users.id
	Nickname     string    // users.nickname (unique)
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}

// PublicUser is the shape of a user returned by the API: everything
// except the credential hash.
type PublicUser struct {
	ID        int64     `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Public converts a stored user into its API representation.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Nickname: u.Nickname, CreatedAt: u.CreatedAt}
}
