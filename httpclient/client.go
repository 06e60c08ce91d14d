package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)

const maxErrorBodySize = 64 << 10

type decodeMode int

const (
	decodeStrict decodeMode = iota
	decodeFile
)

type Client struct {
	config          Config
	httpClient      Doer
	streamClient    Doer
	logger          zerolog.Logger
	userAgent       string
	maxResponseSize int64 // 0 means no limit
	timeout         time.Duration
	rateLimit       rateLimit
	tracer          trace.Tracer
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:          cfg.clone(),
		httpClient:      &http.Client{}, //nolint:exhaustruct
		streamClient:    nil,
		logger:          zerolog.Nop(),
		userAgent:       DefaultUserAgent,
		maxResponseSize: 0,
		timeout:         DefaultTimeout,
		rateLimit:       rateLimit{rps: 0, burst: 0},
		tracer:          otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureTransport(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) configureTransport() error {
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		c.streamClient = c.httpClient

		return nil
	}

	httpClient = cloneHTTPClient(httpClient)
	httpClient.Timeout = c.timeout

	if c.rateLimit.enabled() {
		transport, err := NewRoundTripper(c.rateLimit.rps, c.rateLimit.burst, c.logger, httpClient.Transport)
		if err != nil {
			return err
		}

		httpClient.Transport = transport
	}

	streamClient := cloneHTTPClient(httpClient)
	streamClient.Timeout = 0

	c.httpClient = httpClient
	c.streamClient = streamClient

	return nil
}

func (c *Client) Config() Config {
	return c.config.clone()
}

// Logger returns the request logger. It is disabled unless WithLogger was
// given.
func (c *Client) Logger() zerolog.Logger {
	return c.logger
}

func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Perform returns the decoded response, which may be empty.
func (c *Client) Perform(ctx context.Context, req *Request, opts ...RequestOption) (*Envelope, error) {
	return c.perform(ctx, req, decodeStrict, opts...)
}

// PerformWithContent is Perform but fails with ErrNoContent on an empty body.
func (c *Client) PerformWithContent(ctx context.Context, req *Request, opts ...RequestOption) (*Envelope, error) {
	return requireContent(c.perform(ctx, req, decodeStrict, opts...))
}

// PerformFile treats any successful response that is not declared as JSON
// as binary content.
func (c *Client) PerformFile(ctx context.Context, req *Request, opts ...RequestOption) (*Envelope, error) {
	return c.perform(ctx, req, decodeFile, opts...)
}

func (c *Client) PerformWithContentFile(ctx context.Context, req *Request, opts ...RequestOption) (*Envelope, error) {
	return requireContent(c.perform(ctx, req, decodeFile, opts...))
}

func requireContent(env *Envelope, err error) (*Envelope, error) {
	if err != nil {
		return nil, err
	}

	if env.IsEmpty() {
		return nil, ErrNoContent
	}

	return env, nil
}

func (c *Client) perform(ctx context.Context, req *Request, mode decodeMode, opts ...RequestOption) (*Envelope, error) {
	cfg := buildRequestConfig(opts...)

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	plan, err := c.buildPlan(req, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx, span := c.startSpan(ctx, plan)

	resp, err := c.execute(ctx, plan)
	if err != nil {
		c.logFailure(plan, start, err)
		endSpan(span, 0, err)

		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	if err != nil {
		endSpan(span, resp.StatusCode, err)

		return nil, err
	}

	env, err := decodeResponse(resp, body, mode, plan.requestID)
	c.logResult(plan, resp.StatusCode, start, err)
	endSpan(span, resp.StatusCode, err)

	return env, err
}

func buildRequestConfig(opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers:   make(map[string]string),
		query:     nil,
		timeout:   0,
		requestID: "",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// execute sends the planned request. Transport failures are returned as-is.
func (c *Client) execute(ctx context.Context, plan *plan) (*http.Response, error) {
	var bodyReader io.Reader
	if plan.body != nil {
		bodyReader = bytes.NewReader(plan.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, plan.method, plan.url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	for key, value := range plan.headers {
		httpReq.Header.Set(key, value)
	}

	injectTraceContext(ctx, httpReq.Header)

	doer := c.httpClient
	if plan.stream {
		doer = c.streamClient
	}

	return doer.Do(httpReq) //nolint:wrapcheck
}

func (c *Client) readBody(body io.Reader) ([]byte, error) {
	if c.maxResponseSize > 0 {
		body = io.LimitReader(body, c.maxResponseSize+1)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	if c.maxResponseSize > 0 && int64(len(bodyBytes)) > c.maxResponseSize {
		return nil, ErrResponseTooLarge
	}

	return bodyBytes, nil
}

func decodeResponse(resp *http.Response, body []byte, mode decodeMode, requestID string) (*Envelope, error) {
	if respRequestID := resp.Header.Get(HeaderXRequestID); respRequestID != "" {
		requestID = respRequestID
	}

	contentType := mediaType(resp.Header.Get(HeaderContentType))

	if !isSuccess(resp.StatusCode) {
		return nil, decodeError(resp.StatusCode, contentType, body, mode, requestID)
	}

	env := &Envelope{
		Kind:        KindEmpty,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        nil,
		Header:      resp.Header,
		RequestID:   requestID,
	}

	if len(body) == 0 {
		return env, nil
	}

	env.Body = body

	switch mode {
	case decodeFile:
		if !isJSONContentType(contentType) {
			env.Kind = KindBinary

			return env, nil
		}
	case decodeStrict:
		if isBinaryContentType(contentType) {
			env.Kind = KindBinary

			return env, nil
		}
	}

	if !json.Valid(body) {
		return nil, withRequestID(newParseError(), requestID)
	}

	env.Kind = KindJSON

	return env, nil
}

func decodeError(status int, contentType string, body []byte, mode decodeMode, requestID string) error {
	if mode == decodeFile && !isJSONContentType(contentType) {
		return withRequestID(newParseError(), requestID)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return withRequestID(newParseError(), requestID)
	}

	return withRequestID(MapError(status, errResp.Message, errResp.Error), requestID)
}

func withRequestID(apiErr *APIError, requestID string) *APIError {
	apiErr.RequestID = requestID

	return apiErr
}

func (c *Client) logResult(plan *plan, status int, start time.Time, err error) {
	if apiErr, ok := IsAPIError(err); ok {
		c.logger.Warn().
			Str("method", plan.method).
			Str("path", plan.path).
			Int("status", status).
			Int("mapped_status", apiErr.StatusCode).
			Str("error_type", apiErr.ErrorType).
			Str("request_id", plan.requestID).
			Dur("duration", time.Since(start)).
			Msg("JigsawStack request failed.")

		return
	}

	c.logger.Debug().
		Str("method", plan.method).
		Str("path", plan.path).
		Int("status", status).
		Str("request_id", plan.requestID).
		Dur("duration", time.Since(start)).
		Msg("JigsawStack request completed.")
}

func (c *Client) logFailure(plan *plan, start time.Time, err error) {
	c.logger.Debug().
		Err(err).
		Str("method", plan.method).
		Str("path", plan.path).
		Str("request_id", plan.requestID).
		Dur("duration", time.Since(start)).
		Msg("JigsawStack request could not be sent.")
}
