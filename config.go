package jigsawstack

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/logutil"
	"github.com/joho/godotenv"
)

type EnvConfig struct {
	APIKey                string        `env:"JIGSAWSTACK_API_KEY"`
	APIURL                string        `env:"JIGSAWSTACK_API_URL"                 envDefault:"https://api.jigsawstack.com/v1"`
	DisableRequestLogging bool          `env:"JIGSAWSTACK_DISABLE_REQUEST_LOGGING" envDefault:"false"`
	Timeout               time.Duration `env:"JIGSAWSTACK_TIMEOUT"                 envDefault:"60s"`
	LogLevel              string        `env:"JIGSAWSTACK_LOG_LEVEL"`
	AsyncWorkers          int           `env:"JIGSAWSTACK_ASYNC_WORKERS"           envDefault:"8"`
}

// LoadEnvConfig reads configuration from the process environment. Named
// dotenv files must exist; without names a ./.env file is loaded if present.
// Variables already set in the environment take precedence over dotenv files.
func LoadEnvConfig(files ...string) (*EnvConfig, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("jigsawstack: failed to load env files: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg EnvConfig

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("jigsawstack: failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseEnvConfig parses configuration from the given variables only.
func ParseEnvConfig(environ map[string]string) (*EnvConfig, error) {
	var cfg EnvConfig

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil { //nolint:exhaustruct
		return nil, fmt.Errorf("jigsawstack: failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *EnvConfig) validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	return nil
}

// Options converts the configuration into client options.
func (c *EnvConfig) Options() []ClientOption {
	httpOpts := []httpclient.Option{httpclient.WithTimeout(c.Timeout)}
	if c.LogLevel != "" {
		httpOpts = append(httpOpts, httpclient.WithLogger(logutil.Logger("jigsawstack", c.LogLevel)))
	}

	return []ClientOption{
		WithBaseURL(c.APIURL),
		WithDisableRequestLogging(c.DisableRequestLogging),
		WithAsyncWorkers(c.AsyncWorkers),
		WithHTTPOptions(httpOpts...),
	}
}

// NewFromEnv builds a client from LoadEnvConfig. opts are applied after the
// environment so they take precedence.
func NewFromEnv(opts ...ClientOption) (*Client, error) {
	cfg, err := LoadEnvConfig()
	if err != nil {
		return nil, err
	}

	return New(cfg.APIKey, append(cfg.Options(), opts...)...)
}
