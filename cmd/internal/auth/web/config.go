package web

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the session cookie and request limits.
type Config struct {
	CookieName     string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite
	CookieTTL      time.Duration

	MaxBodyBytes int64

	// Login throttling per client IP. Zero thresholds disable a rule.
	LoginIPMax    int
	LoginIPWindow time.Duration

	LockoutShortThreshold  int
	LockoutShortDuration   time.Duration
	LockoutLongThreshold   int
	LockoutLongDuration    time.Duration
	LockoutSevereThreshold int
	LockoutSevereDuration  time.Duration
}

// DefaultConfig returns production-safe cookie defaults.
func DefaultConfig() Config {
	return Config{
		CookieName:     "warasin_token",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
		CookieTTL:      24 * time.Hour,
		MaxBodyBytes:   64 << 10,

		// The window catches bursts; the tiers catch sustained failures across windows.
		LoginIPMax:    5,
		LoginIPWindow: time.Minute,

		LockoutShortThreshold:  10,
		LockoutShortDuration:   5 * time.Minute,
		LockoutLongThreshold:   20,
		LockoutLongDuration:    30 * time.Minute,
		LockoutSevereThreshold: 40,
		LockoutSevereDuration:  2 * time.Hour,
	}
}

// LoadConfigFromEnv loads cookie config from environment variables with safe defaults.
func LoadConfigFromEnv() Config {
	def := DefaultConfig()

	cfg := Config{
		CookieName:     envString("WARASIN_AUTH_COOKIE_NAME", def.CookieName),
		CookiePath:     envString("WARASIN_AUTH_COOKIE_PATH", def.CookiePath),
		CookieDomain:   envString("WARASIN_AUTH_COOKIE_DOMAIN", ""),
		CookieSecure:   envBool("WARASIN_AUTH_COOKIE_SECURE", def.CookieSecure),
		CookieSameSite: parseSameSite(envString("WARASIN_AUTH_COOKIE_SAMESITE", "lax")),
		CookieTTL:      envDuration("WARASIN_AUTH_COOKIE_TTL", def.CookieTTL),
		MaxBodyBytes:   envInt64("WARASIN_AUTH_MAX_BODY_BYTES", def.MaxBodyBytes),

		LoginIPMax:    int(envInt64("WARASIN_AUTH_LOGIN_IP_MAX", int64(def.LoginIPMax))),
		LoginIPWindow: envDuration("WARASIN_AUTH_LOGIN_IP_WINDOW", def.LoginIPWindow),

		LockoutShortThreshold:  int(envInt64("WARASIN_AUTH_LOGIN_LOCKOUT_SHORT_THRESHOLD", int64(def.LockoutShortThreshold))),
		LockoutShortDuration:   envDuration("WARASIN_AUTH_LOGIN_LOCKOUT_SHORT_DURATION", def.LockoutShortDuration),
		LockoutLongThreshold:   int(envInt64("WARASIN_AUTH_LOGIN_LOCKOUT_LONG_THRESHOLD", int64(def.LockoutLongThreshold))),
		LockoutLongDuration:    envDuration("WARASIN_AUTH_LOGIN_LOCKOUT_LONG_DURATION", def.LockoutLongDuration),
		LockoutSevereThreshold: int(envInt64("WARASIN_AUTH_LOGIN_LOCKOUT_SEVERE_THRESHOLD", int64(def.LockoutSevereThreshold))),
		LockoutSevereDuration:  envDuration("WARASIN_AUTH_LOGIN_LOCKOUT_SEVERE_DURATION", def.LockoutSevereDuration),
	}

	// Browsers drop SameSite=None cookies that are not Secure.
	if cfg.CookieSameSite == http.SameSiteNoneMode {
		cfg.CookieSecure = true
	}
	if !strings.HasPrefix(cfg.CookiePath, "/") {
		cfg.CookiePath = def.CookiePath
	}

	return cfg
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	case "default":
		return http.SameSiteDefaultMode
	default:
		return http.SameSiteLaxMode
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
