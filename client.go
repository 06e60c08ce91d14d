// Package jigsawstack is a Go client for the JigsawStack REST API.
package jigsawstack

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/workerpool"
)

const Version = "0.1.0"

var (
	ErrMissingAPIKey = errors.New(
		"jigsawstack: the api key must be set either by passing it to New or by setting JIGSAWSTACK_API_KEY")
	ErrInvalidParams      = errors.New("jigsawstack: invalid params")
	ErrUnexpectedResponse = errors.New("jigsawstack: unexpected response")
)

type Client struct {
	transport *httpclient.Client
	async     *httpclient.AsyncClient

	Audio           *Audio
	Vision          *Vision
	Web             *Web
	Search          *Search
	Translate       *Translate
	Sentiment       *Sentiment
	Summary         *Summary
	Validate        *Validate
	Prediction      *Prediction
	SQL             *SQL
	Embedding       *Embedding
	Classification  *Classification
	ImageGeneration *ImageGeneration
	PromptEngine    *PromptEngine
	File            *FileStore
	KV              *KV
	Geo             *Geo
}

type clientOptions struct {
	baseURL               string
	disableRequestLogging bool
	headers               map[string]string
	httpOptions           []httpclient.Option
	asyncWorkers          int
	asyncQueueSize        int
}

type ClientOption func(*clientOptions)

func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithDisableRequestLogging asks the API not to log request payloads.
func WithDisableRequestLogging(disable bool) ClientOption {
	return func(o *clientOptions) {
		o.disableRequestLogging = disable
	}
}

func WithHeaders(headers map[string]string) ClientOption {
	return func(o *clientOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}

		maps.Copy(o.headers, headers)
	}
}

func WithHTTPOptions(opts ...httpclient.Option) ClientOption {
	return func(o *clientOptions) {
		o.httpOptions = append(o.httpOptions, opts...)
	}
}

func WithAsyncWorkers(workers int) ClientOption {
	return func(o *clientOptions) {
		if workers > 0 {
			o.asyncWorkers = workers
		}
	}
}

// WithAsyncQueueSize bounds how many async calls may wait for a worker.
// Calls beyond it fail with workerpool.ErrQueueFull instead of blocking.
func WithAsyncQueueSize(size int) ClientOption {
	return func(o *clientOptions) {
		if size >= 0 {
			o.asyncQueueSize = size
		}
	}
}

func New(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	options := &clientOptions{
		baseURL:               httpclient.DefaultBaseURL,
		disableRequestLogging: false,
		headers:               nil,
		httpOptions:           nil,
		asyncWorkers:          httpclient.DefaultAsyncWorkers,
		asyncQueueSize:        httpclient.DefaultAsyncQueueSize,
	}

	for _, opt := range opts {
		opt(options)
	}

	httpOpts := append([]httpclient.Option{httpclient.WithUserAgent("jigsawstack-go/" + Version)}, options.httpOptions...)

	transport, err := httpclient.New(httpclient.Config{
		BaseURL:               options.baseURL,
		APIKey:                apiKey,
		DisableRequestLogging: options.disableRequestLogging,
		Headers:               options.headers,
	}, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("jigsawstack: failed to create client: %w", err)
	}

	async, err := httpclient.NewAsync(transport,
		workerpool.WithWorkerCount(options.asyncWorkers),
		workerpool.WithQueueSize(options.asyncQueueSize),
	)
	if err != nil {
		return nil, fmt.Errorf("jigsawstack: failed to start async pool: %w", err)
	}

	svc := service{transport: transport}

	return &Client{
		transport:       transport,
		async:           async,
		Audio:           &Audio{service: svc},
		Vision:          &Vision{service: svc},
		Web:             &Web{service: svc},
		Search:          &Search{service: svc},
		Translate:       &Translate{service: svc},
		Sentiment:       &Sentiment{service: svc},
		Summary:         &Summary{service: svc},
		Validate:        &Validate{service: svc},
		Prediction:      &Prediction{service: svc},
		SQL:             &SQL{service: svc},
		Embedding:       &Embedding{service: svc},
		Classification:  &Classification{service: svc},
		ImageGeneration: &ImageGeneration{service: svc},
		PromptEngine:    &PromptEngine{service: svc},
		File:            &FileStore{service: svc},
		KV:              &KV{service: svc},
		Geo:             &Geo{service: svc},
	}, nil
}

// Transport exposes the underlying transport for endpoints without a typed
// wrapper.
func (c *Client) Transport() *httpclient.Client {
	return c.transport
}

func (c *Client) AsyncTransport() *httpclient.AsyncClient {
	return c.async
}

// Close stops the async worker pool after queued calls finish.
func (c *Client) Close() error {
	return c.async.Close()
}

// Async runs call on the client's worker pool and returns without waiting
// for a free worker.
//
//	future := jigsawstack.Async(ctx, client, func(ctx context.Context) (*jigsawstack.SentimentResponse, error) {
//		return client.Sentiment.Analyze(ctx, params)
//	})
//	resp, err := future.Await(ctx)
func Async[T any](ctx context.Context, c *Client, call func(context.Context) (T, error)) *httpclient.Future[T] {
	return httpclient.Async(ctx, c.async, call)
}
