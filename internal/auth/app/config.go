package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/aussiebroadwan/shopauth/pkg/httpx"
)

// TokenLifetimes are the accepted AUTH_TOKEN_LIFETIME options.
var TokenLifetimes = map[string]time.Duration{
	"1min":  time.Minute,
	"5min":  5 * time.Minute,
	"10min": 10 * time.Minute,
	"15min": 15 * time.Minute,
	"1hrs":  time.Hour,
	"3hrs":  3 * time.Hour,
	"8hrs":  8 * time.Hour,
	"24hrs": 24 * time.Hour,
}

// RefreshTokenLifetimes are the accepted AUTH_REFRESH_TOKEN_LIFETIME options.
var RefreshTokenLifetimes = map[string]time.Duration{
	"24hrs":  24 * time.Hour,
	"7days":  7 * 24 * time.Hour,
	"30days": 30 * 24 * time.Hour,
	"60days": 60 * 24 * time.Hour,
	"90days": 90 * 24 * time.Hour,
}

type Config struct {
	ShopID  int64  // Shop the tokens are issued for (default: 1)
	ShopURL string // Issuer and audience of tokens (default: http://localhost:8080)

	TokenLifetime        string // Option name from TokenLifetimes (default: 8hrs)
	RefreshTokenLifetime string // Option name from RefreshTokenLifetimes (default: 24hrs)
	TokenQuota           int64  // Live tokens per user (default: 10000)
	FingerprintCookie    string // SameSite policy of the fingerprint cookie (sameSite, crossSite)

	DatabaseFile  string // Path to SQLite database file (default: ./auth.db)
	PepperFile    string // Path to file containing pepper for password hashing (default: ./pepper)
	MasterKeyPath string // Optional: path to master key encrypting the signature key at rest

	AdminUsername string // Optional: admin seeded into an empty user directory
	AdminPassword string // Optional: generated and logged once when empty

	RedisURL          string        // Optional: enables the shared login lockout
	LoginMaxFailures  int64         // Failed logins before lockout (default: 5)
	LoginLockout      time.Duration // Lockout duration (default: 15m)
	Env               string        // Environment (dev, staging, prod) (default: dev)
	LogLevel          string        // Log level (debug, info, warn, error) (default: info)
	LogFormat         string        // Log format (json, text) (default: json)
	Port              int           // HTTP server port (default: 8080)
	ShutdownGrace     time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingEvery time.Duration // Expired row cleanup interval, 0 disables (default: 0)
}

func LoadConfig() Config {
	return Config{
		ShopID:               int64(getEnvIntOrDefault("SHOP_ID", 1)),
		ShopURL:              getEnvOrDefault("SHOP_URL", "http://localhost:8080"),
		TokenLifetime:        getEnvOrDefault("AUTH_TOKEN_LIFETIME", "8hrs"),
		RefreshTokenLifetime: getEnvOrDefault("AUTH_REFRESH_TOKEN_LIFETIME", "24hrs"),
		TokenQuota:           int64(getEnvIntOrDefault("AUTH_TOKEN_QUOTA", 10000)),
		FingerprintCookie:    getEnvOrDefault("AUTH_FINGERPRINT_COOKIE_MODE", string(httpx.CookieModeSameSite)),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:           getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		MasterKeyPath:        os.Getenv("AUTH_MASTER_KEY_PATH"),
		AdminUsername:        os.Getenv("AUTH_ADMIN_USERNAME"),
		AdminPassword:        os.Getenv("AUTH_ADMIN_PASSWORD"),
		RedisURL:             os.Getenv("AUTH_REDIS_URL"),
		LoginMaxFailures:     int64(getEnvIntOrDefault("AUTH_LOGIN_MAX_FAILURES", 5)),
		LoginLockout:         getEnvDurationOrDefault("AUTH_LOGIN_LOCKOUT", 15*time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGrace:        getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingEvery:    getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 0),
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ShopID, validation.Required, validation.Min(1)),
		validation.Field(&c.ShopURL, validation.Required),
		validation.Field(&c.TokenLifetime, validation.Required, validation.In(optionNames(TokenLifetimes)...)),
		validation.Field(&c.RefreshTokenLifetime, validation.Required, validation.In(optionNames(RefreshTokenLifetimes)...)),
		validation.Field(&c.TokenQuota, validation.Required, validation.Min(1)),
		validation.Field(&c.FingerprintCookie, validation.In(string(httpx.CookieModeSameSite), string(httpx.CookieModeCrossSite))),
		validation.Field(&c.DatabaseFile, validation.Required),
		validation.Field(&c.PepperFile, validation.Required),
		validation.Field(&c.LoginMaxFailures, validation.Min(1)),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.HousekeepingEvery, validation.Min(time.Duration(0))),
	)
}

// Lifetimes resolves the configured option names.
func (c Config) Lifetimes() (token, refresh time.Duration, err error) {
	token, ok := TokenLifetimes[c.TokenLifetime]
	if !ok {
		return 0, 0, fmt.Errorf("unknown token lifetime %q", c.TokenLifetime)
	}
	refresh, ok = RefreshTokenLifetimes[c.RefreshTokenLifetime]
	if !ok {
		return 0, 0, fmt.Errorf("unknown refresh token lifetime %q", c.RefreshTokenLifetime)
	}
	return token, refresh, nil
}

func optionNames(options map[string]time.Duration) []interface{} {
	names := make([]interface{}, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	return names
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// e.g. "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
