package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync/atomic"
	"time"
)

const StreamChunkSize = 1024

// Chunk is one unit yielded by a Stream. JSON is set when the chunk decoded
// as JSON, otherwise Text holds the raw chunk.
type Chunk struct {
	JSON json.RawMessage
	Text string
}

func (c Chunk) IsJSON() bool {
	return c.JSON != nil
}

func (c Chunk) Decode(v any) error {
	if !c.IsJSON() {
		return fmt.Errorf("%w: chunk is not json", ErrDecodeResponse)
	}

	if err := json.Unmarshal(c.JSON, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}

// String returns the chunk as text regardless of its kind.
func (c Chunk) String() string {
	if c.IsJSON() {
		return string(c.JSON)
	}

	return c.Text
}

// Stream reads a successful response body in fixed-size chunks. It is not
// safe for concurrent use except for Close.
type Stream struct {
	StatusCode int
	Header     http.Header
	RequestID  string

	body    io.ReadCloser
	cancel  context.CancelFunc
	buf     []byte
	pending []Chunk
	current Chunk
	err     error
	done    bool
	closed  atomic.Bool
}

func newStream(resp *http.Response, requestID string, cancel context.CancelFunc) *Stream {
	if cancel == nil {
		cancel = func() {}
	}

	return &Stream{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		RequestID:  requestID,
		body:       resp.Body,
		cancel:     cancel,
		buf:        make([]byte, StreamChunkSize),
		pending:    nil,
		current:    Chunk{JSON: nil, Text: ""},
		err:        nil,
		done:       false,
		closed:     atomic.Bool{},
	}
}

// Next advances to the next chunk. It returns false once the body is
// exhausted, an error occurred or the stream was closed.
func (s *Stream) Next() bool {
	if s.closed.Load() && !s.done {
		return false
	}

	for len(s.pending) == 0 {
		if s.done || s.closed.Load() {
			return false
		}

		s.fill()
	}

	s.current = s.pending[0]
	s.pending = s.pending[1:]

	return true
}

func (s *Stream) Chunk() Chunk {
	return s.current
}

func (s *Stream) Err() error {
	return s.err
}

// Chunks yields every remaining chunk and closes the stream afterwards.
func (s *Stream) Chunks() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		defer s.Close()

		for s.Next() {
			if !yield(s.Chunk()) {
				return
			}
		}
	}
}

func (s *Stream) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := s.body.Close()
	s.cancel()

	return err //nolint:wrapcheck
}

func (s *Stream) fill() {
	n, err := s.body.Read(s.buf)
	if n > 0 {
		s.pending = append(s.pending, parseChunk(s.buf[:n])...)
	}

	if err == nil {
		return
	}

	s.done = true

	if !errors.Is(err, io.EOF) && !s.closed.Load() {
		s.err = err
	}

	_ = s.Close()
}

// ready reads ahead until a chunk is available or the body ends.
func (s *Stream) ready() bool {
	for len(s.pending) == 0 && !s.done && !s.closed.Load() {
		s.fill()
	}

	return len(s.pending) > 0
}

func parseChunk(data []byte) []Chunk {
	decoder := json.NewDecoder(bytes.NewReader(data))

	var chunks []Chunk

	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) && len(chunks) > 0 {
				return chunks
			}

			return []Chunk{{JSON: nil, Text: string(data)}}
		}

		chunks = append(chunks, Chunk{JSON: raw, Text: ""})
	}
}

// PerformStreaming issues the request and returns a Stream over the body.
// Non-2xx responses fail before any chunk is produced.
func (c *Client) PerformStreaming(ctx context.Context, req *Request, opts ...RequestOption) (*Stream, error) {
	cfg := buildRequestConfig(opts...)

	var cancel context.CancelFunc
	if cfg.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
	}

	stream, err := c.openStream(ctx, req, cfg, cancel)
	if err != nil && cancel != nil {
		cancel()
	}

	return stream, err
}

// PerformWithContentStreaming is PerformStreaming but fails with ErrNoContent
// when the body is empty.
func (c *Client) PerformWithContentStreaming(ctx context.Context, req *Request, opts ...RequestOption) (*Stream, error) {
	stream, err := c.PerformStreaming(ctx, req, opts...)
	if err != nil {
		return nil, err
	}

	if !stream.ready() {
		_ = stream.Close()

		if stream.err != nil {
			return nil, stream.err
		}

		return nil, ErrNoContent
	}

	return stream, nil
}

func (c *Client) openStream(
	ctx context.Context,
	req *Request,
	cfg *requestConfig,
	cancel context.CancelFunc,
) (*Stream, error) {
	plan, err := c.buildPlan(req, cfg)
	if err != nil {
		return nil, err
	}

	plan.stream = true
	start := time.Now()

	// The span covers opening the stream, not reading it.
	ctx, span := c.startSpan(ctx, plan)

	resp, err := c.execute(ctx, plan)
	if err != nil {
		c.logFailure(plan, start, err)
		endSpan(span, 0, err)

		return nil, err
	}

	requestID := plan.requestID
	if respRequestID := resp.Header.Get(HeaderXRequestID); respRequestID != "" {
		requestID = respRequestID
	}

	if !isSuccess(resp.StatusCode) {
		defer resp.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		err := decodeError(resp.StatusCode, mediaType(resp.Header.Get(HeaderContentType)), body, decodeStrict, requestID)
		c.logResult(plan, resp.StatusCode, start, err)
		endSpan(span, resp.StatusCode, err)

		return nil, err
	}

	c.logResult(plan, resp.StatusCode, start, nil)
	endSpan(span, resp.StatusCode, nil)

	return newStream(resp, requestID, cancel), nil
}
