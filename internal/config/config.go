// Package config loads the dashboard settings from an optional config file
// and CPMS_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/querycache"
)

const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	API            APIConfig            `mapstructure:"api"`
	HTTP           HTTPConfig           `mapstructure:"http"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Session        SessionConfig        `mapstructure:"session"`
	Cache          CacheConfig          `mapstructure:"cache"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Logging        LoggingConfig        `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SignInRoute string        `mapstructure:"sign_in_route"`
}

// HTTPConfig is the dashboard listener. MetricsToken guards /metrics when set.
type HTTPConfig struct {
	ListenAddr   string `mapstructure:"listen_addr"`
	MetricsToken string `mapstructure:"metrics_token"`
}

// DatabaseConfig holds the remote command audit log DSN. Empty disables it.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type SessionConfig struct {
	Backend     string `mapstructure:"backend"`
	RedisURL    string `mapstructure:"redis_url"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

type CacheConfig struct {
	StaleTime       time.Duration `mapstructure:"stale_time"`
	CacheTime       time.Duration `mapstructure:"cache_time"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MutationRetries int           `mapstructure:"mutation_retries"`
	Backoff         time.Duration `mapstructure:"backoff"`
	MaxBackoff      time.Duration `mapstructure:"max_backoff"`
}

type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MinRequests  uint32        `mapstructure:"min_requests"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	br := apiclient.DefaultBreakerSettings()

	v.SetDefault("api.base_url", apiclient.DefaultBaseURL)
	v.SetDefault("api.timeout", apiclient.DefaultTimeout)
	v.SetDefault("api.sign_in_route", apiclient.DefaultSignInRoute)
	v.SetDefault("http.listen_addr", ":8081")
	v.SetDefault("http.metrics_token", "")
	v.SetDefault("database.url", "")
	v.SetDefault("session.backend", SessionMemory)
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")
	v.SetDefault("session.redis_prefix", "cpmsdash")
	v.SetDefault("cache.stale_time", querycache.DefaultStaleTime)
	v.SetDefault("cache.cache_time", querycache.DefaultCacheTime)
	v.SetDefault("cache.max_retries", querycache.DefaultMaxRetries)
	v.SetDefault("cache.mutation_retries", querycache.DefaultMutationRetries)
	v.SetDefault("cache.backoff", querycache.DefaultBackoffBase)
	v.SetDefault("cache.max_backoff", querycache.DefaultBackoffCap)
	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", br.MaxRequests)
	v.SetDefault("circuit_breaker.interval", br.Interval)
	v.SetDefault("circuit_breaker.timeout", br.Timeout)
	v.SetDefault("circuit_breaker.min_requests", br.MinRequests)
	v.SetDefault("circuit_breaker.failure_ratio", br.FailureRatio)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load reads cpmsdash.yaml from the working directory or /etc/cpmsdash when
// present, then applies the environment. CPMS_API_BASE_URL sets api.base_url.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	v.SetConfigName("cpmsdash")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/cpmsdash")

	v.SetEnvPrefix("CPMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// short names kept for existing deployments
	_ = v.BindEnv("http.listen_addr", "CPMS_HTTP_LISTEN_ADDR", "CPMS_LISTEN_ADDR")
	_ = v.BindEnv("database.url", "CPMS_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("session.redis_url", "CPMS_SESSION_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("logging.level", "CPMS_LOGGING_LEVEL", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: api.timeout must be positive, got %s", c.API.Timeout)
	}
	switch c.Session.Backend {
	case SessionMemory:
	case SessionRedis:
		if c.Session.RedisURL == "" {
			return errors.New("config: session.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown session.backend %q", c.Session.Backend)
	}
	if c.Cache.MutationRetries > 1 {
		return fmt.Errorf("config: cache.mutation_retries is at most 1, got %d", c.Cache.MutationRetries)
	}
	return nil
}

func (c Config) ClientOptions() apiclient.Options {
	opts := apiclient.Options{
		BaseURL:     c.API.BaseURL,
		Timeout:     c.API.Timeout,
		SignInRoute: c.API.SignInRoute,
	}
	if c.CircuitBreaker.Enabled {
		opts.Breaker = &apiclient.BreakerSettings{
			Name:         "cpms-api",
			MaxRequests:  c.CircuitBreaker.MaxRequests,
			Interval:     c.CircuitBreaker.Interval,
			Timeout:      c.CircuitBreaker.Timeout,
			MinRequests:  c.CircuitBreaker.MinRequests,
			FailureRatio: c.CircuitBreaker.FailureRatio,
		}
	}
	return opts
}

func (c Config) QueryOptions() querycache.Options {
	opts := querycache.DefaultOptions()
	opts.StaleTime = c.Cache.StaleTime
	opts.CacheTime = c.Cache.CacheTime
	opts.MaxRetries = c.Cache.MaxRetries
	opts.MutationRetries = c.Cache.MutationRetries
	opts.Backoff = querycache.ExponentialBackoff(c.Cache.Backoff, c.Cache.MaxBackoff)
	return opts
}
