package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Wall      WallConfig      `yaml:"wall"`
	Presence  PresenceConfig  `yaml:"presence"`
	Rewrite   RewriteConfig   `yaml:"rewrite"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// WallConfig holds the bounded-collection and feed paging settings.
type WallConfig struct {
	// Cap is the maximum number of notes kept on the wall. Admitting a
	// note to a full wall evicts the least-liked (oldest on ties) one.
	Cap int `yaml:"cap" env:"WALL_CAP" env-default:"100"`
	// PageSize is the feed page length served to clients.
	PageSize int `yaml:"page_size" env:"WALL_PAGE_SIZE" env-default:"12"`
}

// Presence identity strategies. A deployment picks exactly one; records
// produced under different strategies are never mixed.
const (
	PresenceIdentitySession     = "session"
	PresenceIdentityFingerprint = "fingerprint"
)

// PresenceConfig holds visitor-presence tracking settings.
type PresenceConfig struct {
	TTL           time.Duration `yaml:"ttl"            env:"PRESENCE_TTL"            env-default:"5m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"PRESENCE_SWEEP_INTERVAL" env-default:"30s"`
	// Identity selects how clients are keyed: "session" (random token per
	// connection) or "fingerprint" (derived from stable request traits).
	Identity string `yaml:"identity" env:"PRESENCE_IDENTITY" env-default:"session"`
}

// RewriteConfig holds the outbound text-rewrite webhook settings.
// An empty URL disables the rewrite endpoint.
type RewriteConfig struct {
	URL     string        `yaml:"url"     env:"REWRITE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"REWRITE_TIMEOUT" env-default:"10s"`
}

// RateLimitConfig holds the per-IP request rate limit settings.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute" env:"RATELIMIT_PER_MINUTE" env-default:"120"`
	// CleanupInterval is how often idle per-IP buckets are released.
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATELIMIT_CLEANUP_INTERVAL" env-default:"1m"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RewriteEnabled reports whether a rewrite webhook is configured.
func (c RewriteConfig) RewriteEnabled() bool {
	return c.URL != ""
}
