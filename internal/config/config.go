package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Geo      GeoConfig
	Redirect RedirectConfig
	Security SecurityConfig
	Kafka    KafkaConfig
	OTel     OTelConfig
}

type AppConfig struct {
	Name    string
	Version string
	Env     string
}

type ServerConfig struct {
	Port string
	Host string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig points at the remote identity service used for bearer-token
// introspection.
type AuthConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GeoConfig controls the IP geolocation lookup on the redirect path.
// The timeout bounds a single best-effort attempt.
type GeoConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedirectConfig struct {
	Status int // 302 or 307
}

type SecurityConfig struct {
	WriteRatePerMinute int
	AllowedOrigins     []string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether visit events should be published at all.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		App: AppConfig{
			Name:    GetEnv("APP_NAME", "atalho"),
			Version: GetEnv("APP_VERSION", "0.1.0"),
			Env:     GetEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: GetEnv("APP_PORT", "8080"),
			Host: GetEnv("APP_HOST", "localhost"),
		},
		Postgres: PostgresConfig{
			DSN: GetEnv("DATABASE_URL", DefaultPostgresDSN()),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", "localhost:6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			BaseURL: GetEnv("AUTH_MS_URL", "http://localhost:9000"),
			Timeout: GetEnvDuration("AUTH_TIMEOUT", 5*time.Second),
		},
		Geo: GeoConfig{
			BaseURL: GetEnv("GEO_API_URL", "http://ip-api.com"),
			Timeout: GetEnvDuration("GEO_TIMEOUT", 2*time.Second),
		},
		Redirect: RedirectConfig{
			Status: GetEnvInt("REDIRECT_STATUS", http.StatusFound),
		},
		Security: SecurityConfig{
			WriteRatePerMinute: GetEnvInt("WRITE_RATE_PER_MINUTE", 60),
			AllowedOrigins:     GetEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Kafka: KafkaConfig{
			Brokers: GetEnvSlice("KAFKA_BROKERS", nil),
			Topic:   GetEnv("KAFKA_VISITS_TOPIC", "visits.recorded"),
		},
		OTel: OTelConfig{
			Enabled:  GetEnvBool("OTEL_ENABLED", false),
			Endpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
	}

	if cfg.Redirect.Status != http.StatusFound && cfg.Redirect.Status != http.StatusTemporaryRedirect {
		return nil, fmt.Errorf("REDIRECT_STATUS must be 302 or 307 (got %d)", cfg.Redirect.Status)
	}
	if cfg.Geo.Timeout <= 0 || cfg.Geo.Timeout > 10*time.Second {
		return nil, fmt.Errorf("GEO_TIMEOUT must be within (0s, 10s] (got %s)", cfg.Geo.Timeout)
	}

	return cfg, nil
}
