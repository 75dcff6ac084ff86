package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 session token with its expiry. The API
// itself is userId-based for compatibility with the original clients;
// the token is an additive convenience returned by register/login and
// accepted by /api/users/me.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs a session JWT carrying the user id as
// subject plus the nickname claim.
func NewAccessToken(secret string, userID int64, nickname string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      userID,
		"nickname": nickname,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
