package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Role identifiers issued by the backend identity endpoint.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Session backend selection.
const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
)

// APIRoutes are the backend endpoints the gateway talks to.
type APIRoutes struct {
	Login    string
	Refresh  string
	Identity string
	Clients  string
	Offers   string
	Products string
}

// GatewayRoutes are the gateway-local redirect targets used by the route guard.
type GatewayRoutes struct {
	Login        string
	Register     string
	Unauthorized string
	Landing      string
}

type AppConfig struct {
	// Server
	HTTPAddr   string
	APIBaseURL *url.URL

	// Session
	SessionBackend string
	CookieMaxAge   int // seconds
	CookieDomain   string
	CookieSecure   bool
	RedisAddr      string
	RedisPass      string

	API     APIRoutes
	Gateway GatewayRoutes
}

// Load reads environment variables into AppConfig. It fails fast on values
// that would leave the gateway unable to reach the backend.
func Load() (AppConfig, error) {
	rawBase := getEnv("API_BASE_URL", "http://localhost:8080")
	base, err := url.Parse(rawBase)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return AppConfig{}, fmt.Errorf("invalid API_BASE_URL %q", rawBase)
	}

	backend := strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendCookie))
	if backend != SessionBackendCookie && backend != SessionBackendRedis {
		return AppConfig{}, fmt.Errorf("invalid SESSION_BACKEND %q", backend)
	}

	maxAge, err := strconv.Atoi(getEnv("COOKIE_MAX_AGE", "86400"))
	if err != nil || maxAge <= 0 {
		return AppConfig{}, fmt.Errorf("invalid COOKIE_MAX_AGE")
	}

	return AppConfig{
		HTTPAddr:   getEnv("HTTP_ADDR", ":8000"),
		APIBaseURL: base,

		SessionBackend: backend,
		CookieMaxAge:   maxAge,
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:   strings.ToLower(getEnv("COOKIE_SECURE", "false")) == "true",
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:      getEnv("REDIS_PASS", ""),

		API: APIRoutes{
			Login:    "/api/auth",
			Refresh:  "/api/token/refresh",
			Identity: "/api/me",
			Clients:  "/api/clients",
			Offers:   "/api/offers",
			Products: "/api/products",
		},
		Gateway: GatewayRoutes{
			Login:        "/login",
			Register:     "/register",
			Unauthorized: "/unauthorized",
			Landing:      "/",
		},
	}, nil
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
