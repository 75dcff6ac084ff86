package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing supports two schemes. The legacy scheme is a single
// SHA-256 pass over password+nickname (the nickname acts as a pseudo
// salt); it is weak, but every credential already stored was hashed this
// way, so it stays the default to keep existing accounts verifiable.
// New deployments can opt into bcrypt via PASSWORD_SCHEME=bcrypt; legacy
// hashes keep verifying either way.

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// HashPassword hashes a password for storage under the given scheme.
func HashPassword(password, nickname, scheme string, cost int) (string, error) {
	if scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return legacyHash(password, nickname), nil
}

// VerifyPassword checks a plain password against a stored hash. Bcrypt
// hashes are recognized by their prefix; everything else is treated as a
// legacy SHA-256 digest.
func VerifyPassword(hash, password, nickname string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return hash == legacyHash(password, nickname)
}

func legacyHash(password, nickname string) string {
	sum := sha256.Sum256([]byte(password + nickname))
	return hex.EncodeToString(sum[:])
}
