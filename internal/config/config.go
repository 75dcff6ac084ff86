// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required values are enforced by must();
// everything else has a sensible default so a bare dev environment can
// still boot.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign session tokens
	AccessTTLMin   int    // session token time-to-live in minutes
	KakaoAPIKey    string // Kakao REST API key; empty means search-place returns 500
	KakaoAPIURL    string // keyword search endpoint, overridable for tests
	StaticDir      string // directory holding the pre-built SPA
	PasswordScheme string // "sha256" (legacy-compatible default) or "bcrypt"
	BcryptCost     int    // bcrypt cost when PasswordScheme is "bcrypt"
}

// Load reads configuration values from environment variables and returns
// a Config. Missing required variables cause a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 60*24),
		KakaoAPIKey:    os.Getenv("KAKAO_API_KEY"),
		KakaoAPIURL:    getenv("KAKAO_API_URL", "https://dapi.kakao.com/v2/local/search/keyword.json"),
		StaticDir:      getenv("STATIC_DIR", "dist"),
		PasswordScheme: getenv("PASSWORD_SCHEME", "sha256"),
		BcryptCost:     envInt("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
