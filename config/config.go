// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shopsquad/shopsquad-backend/logger"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minJWTLength = 32
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	JwtSecretKey   string      `mapstructure:"JWT_SECRET_KEY"`
	// TokenTTLMinutes is the lifetime of issued access tokens.
	TokenTTLMinutes int `mapstructure:"TOKEN_TTL_MINUTES"`
}

// TokenTTL returns the access token lifetime as a duration.
func (c *ServerConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host           string `mapstructure:"HOST"`
	Port           int    `mapstructure:"PORT"`
	User           string `mapstructure:"USER"`
	Password       string `mapstructure:"PASSWORD"`
	Name           string `mapstructure:"NAME"`
	MaxConnections int    `mapstructure:"MAX_CONNECTIONS"`
	SSLMode        string `mapstructure:"SSL_MODE"`
}

// URL returns a postgres:// connection URL suitable for pgxpool and
// golang-migrate.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details for rate limiting.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
	UseTLS   bool   `mapstructure:"USE_TLS"`
	PoolSize int    `mapstructure:"POOL_SIZE"`
}

// EventServiceConfig tunes the in-process trip event broker.
type EventServiceConfig struct {
	// Buffer size for the channel delivering events to a single subscriber.
	EventBufferSize int `mapstructure:"EVENT_BUFFER_SIZE"`
}

// RateLimitConfig holds rate limiting windows.
type RateLimitConfig struct {
	AuthRequestsPerMinute     int `mapstructure:"AUTH_REQUESTS_PER_MINUTE"`
	MutationRequestsPerMinute int `mapstructure:"MUTATION_REQUESTS_PER_MINUTE"`
	WindowSeconds             int `mapstructure:"WINDOW_SECONDS"`
}

// Window returns the rate limit window as a duration.
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Config aggregates all application configuration sections.
type Config struct {
	Server       ServerConfig       `mapstructure:"SERVER"`
	Database     DatabaseConfig     `mapstructure:"DATABASE"`
	Redis        RedisConfig        `mapstructure:"REDIS"`
	EventService EventServiceConfig `mapstructure:"EVENT_SERVICE"`
	RateLimit    RateLimitConfig    `mapstructure:"RATE_LIMIT"`
}

// IsDevelopment returns true when running in development.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables, applies
// defaults, unmarshals into Config, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TOKEN_TTL_MINUTES", 60*24)
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "shopsquad_dev")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 20)
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 3)
	v.SetDefault("EVENT_SERVICE.EVENT_BUFFER_SIZE", 100)
	v.SetDefault("RATE_LIMIT.AUTH_REQUESTS_PER_MINUTE", 10)
	v.SetDefault("RATE_LIMIT.MUTATION_REQUESTS_PER_MINUTE", 120)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.JWT_SECRET_KEY", "JWT_SECRET_KEY"},
		{"SERVER.TOKEN_TTL_MINUTES", "TOKEN_TTL_MINUTES"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"EVENT_SERVICE.EVENT_BUFFER_SIZE", "EVENT_SERVICE_EVENT_BUFFER_SIZE"},
		{"RATE_LIMIT.AUTH_REQUESTS_PER_MINUTE", "RATE_LIMIT_AUTH_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.MUTATION_REQUESTS_PER_MINUTE", "RATE_LIMIT_MUTATION_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"db_host", cfg.Database.Host,
		"event_buffer_size", cfg.EventService.EventBufferSize,
	)
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if len(cfg.Server.JwtSecretKey) < minJWTLength {
		return fmt.Errorf("JWT secret key must be at least %d characters long", minJWTLength)
	}
	if cfg.Server.TokenTTLMinutes <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	if cfg.EventService.EventBufferSize <= 0 {
		return fmt.Errorf("event buffer size must be positive")
	}

	if cfg.RateLimit.AuthRequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit auth requests per minute must be positive")
	}
	if cfg.RateLimit.MutationRequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit mutation requests per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	return nil
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
