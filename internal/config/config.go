package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvDockerDev   = "dockerdev"
)

var ErrMissingSecrets = errors.New("missing required secrets")

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// requests per minute, per client IP
	LoginRateLimitAllowedPerMin   int `toml:"login_rate_limit_allowed_per_min"`
	ContactRateLimitAllowedPerMin int `toml:"contact_rate_limit_allowed_per_min"`

	// public listings cache
	ListCacheSizeMB     int `toml:"list_cache_size_mb"`
	ListCacheTTLSeconds int `toml:"list_cache_ttl_seconds"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// when true, an invalid token presented on the login page is cleared
	ClearStaleCookieOnLogin bool `toml:"clear_stale_cookie_on_login"`
}

// IsProduction reports whether cookies must be sent with the Secure attribute.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	var envName string
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, envName = t.Development, EnvDevelopment
	case "prod", "production":
		cfg, envName = t.Production, EnvProduction
	case "ddev", "dockerdev":
		cfg, envName = t.DockerDev, EnvDockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found", envName)
	}
	cfg.Environment = envName
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.ContactRateLimitAllowedPerMin <= 0 {
		c.ContactRateLimitAllowedPerMin = 5
	}
	if c.ListCacheSizeMB <= 0 {
		c.ListCacheSizeMB = 10
	}
	if c.ListCacheTTLSeconds <= 0 {
		c.ListCacheTTLSeconds = 300
	}
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}
	return t.Get(env)
}

// Secrets are never read from the config file.
type Secrets struct {
	JWTSecret     string `env:"PORTFOLIO_JWT_SECRET"`
	AdminUsername string `env:"PORTFOLIO_ADMIN_USERNAME"`
	AdminPassword string `env:"PORTFOLIO_ADMIN_PASSWORD"`

	PostgresPassword string `env:"PORTFOLIO_POSTGRES_PASS"`
	RedisPassword    string `env:"PORTFOLIO_REDIS_PASS"`
	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
}

// LoadSecrets reads the secrets using lookuper (envconfig.OsLookuper() in main).
// The token signing secret and the admin credentials are required: without
// them the admin area could never be guarded, so this is a startup error.
func LoadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Secrets) Validate() error {
	var missing []string
	if s.JWTSecret == "" {
		missing = append(missing, "PORTFOLIO_JWT_SECRET")
	}
	if s.AdminUsername == "" {
		missing = append(missing, "PORTFOLIO_ADMIN_USERNAME")
	}
	if s.AdminPassword == "" {
		missing = append(missing, "PORTFOLIO_ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSecrets, strings.Join(missing, ", "))
	}
	return nil
}
