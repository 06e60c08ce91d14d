package httpclient

import (
	"fmt"
	"maps"
	"strings"

	"github.com/jigsawstack/jigsawstack-go/validator"
)

// Config is the immutable per-client configuration shared by every request.
type Config struct {
	BaseURL               string            `json:"base_url"                validate:"required,url"`
	APIKey                string            `json:"api_key"                 validate:"required"`
	DisableRequestLogging bool              `json:"disable_request_logging"`
	Headers               map[string]string `json:"headers"`
}

func (c Config) Validate() error {
	if err := validator.Default().Validate(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c Config) clone() Config {
	cloned := c
	cloned.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	if c.Headers != nil {
		cloned.Headers = maps.Clone(c.Headers)
	}

	return cloned
}
