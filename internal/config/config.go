package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Environment names a deployment target. It selects the backend base URL
// and whether client requests route through the first-party gateway.
type Environment string

const (
	EnvLocal       Environment = "local"
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Endpoints holds the per-environment routing configuration.
type Endpoints struct {
	BackendURL string
	GatewayURL string
	// UseGateway routes client requests through the first-party gateway
	// instead of hitting the backend directly.
	UseGateway bool
}

var environmentEndpoints = map[Environment]Endpoints{
	EnvLocal:       {BackendURL: "http://127.0.0.1:5006", GatewayURL: "http://127.0.0.1:3000", UseGateway: true},
	EnvDevelopment: {BackendURL: "https://dev-api.perfpulseai.com", UseGateway: false},
	EnvStaging:     {BackendURL: "https://staging-api.perfpulseai.com", UseGateway: false},
	EnvProduction:  {BackendURL: "https://api.perfpulseai.com", UseGateway: false},
}

// EndpointsFor returns the routing configuration for an environment,
// falling back to local for unknown names.
func EndpointsFor(env Environment) Endpoints {
	if ep, ok := environmentEndpoints[env]; ok {
		return ep
	}
	return environmentEndpoints[EnvLocal]
}

type Config struct {
	Port        string
	GatewayPort string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration
	// BackendURL is where the gateway forwards requests.
	BackendURL string
	// ProxyTimeout bounds each gateway-to-backend call.
	ProxyTimeout time.Duration
	// EncryptCredentials makes clients RSA-encrypt login/register payloads.
	// Off by default; the plaintext contract is the mainline.
	EncryptCredentials bool
}

func Load() Config {
	cfg := Config{
		Port:               getEnv("PORT", "5006"),
		GatewayPort:        getEnv("GATEWAY_PORT", "3000"),
		Env:                getEnv("ENV", "development"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/perfpulse?parseTime=true"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:          24 * time.Hour,
		BackendURL:         getEnv("BACKEND_URL", "http://127.0.0.1:5006"),
		ProxyTimeout:       getDurationEnv("PROXY_TIMEOUT", 5*time.Second),
		EncryptCredentials: getBoolEnv("AUTH_ENCRYPT_CREDENTIALS", false),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
