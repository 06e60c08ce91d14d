package httpclient

import (
	"maps"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTimeout         = 60 * time.Second
	DefaultBaseURL         = "https://api.jigsawstack.com/v1"
	DefaultUserAgent       = "jigsawstack-go"
	HeaderAccept           = "Accept"
	HeaderContentType      = "Content-Type"
	HeaderAPIKey           = "X-Api-Key"
	HeaderNoRequestLog     = "X-Jigsaw-No-Request-Log"
	HeaderXRequestID       = "X-Request-Id"
	HeaderUserAgent        = "User-Agent"
	ContentTypeJSON        = "application/json"
	ContentTypeOctetStream = "application/octet-stream"
)

type Option func(*Client)

// WithTimeout bounds every non-streaming request. It only applies when the
// underlying Doer is an *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// Non-positive values leave the client unthrottled.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.rateLimit = rateLimit{rps: rps, burst: burst}
	}
}

type RequestOption func(*requestConfig)

type requestConfig struct {
	headers   map[string]string
	query     map[string]string
	timeout   time.Duration
	requestID string
}

func WithRequestHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		rc.headers[key] = value
	}
}

func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(rc *requestConfig) {
		rc.timeout = timeout
	}
}

func WithRequestID(requestID string) RequestOption {
	return func(rc *requestConfig) {
		rc.requestID = requestID
	}
}

func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = make(map[string]string)
		}

		rc.query[key] = value
	}
}

func WithQueryParams(params map[string]string) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = make(map[string]string)
		}

		maps.Copy(rc.query, params)
	}
}

func cloneHTTPClient(httpClient *http.Client) *http.Client {
	clone := *httpClient

	return &clone
}
