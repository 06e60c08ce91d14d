package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RecordedRequest is a snapshot of one request received by a StubServer.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// StubServer is an httptest.Server that records every request before
// handing it to the wrapped handler.
type StubServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

func NewStubServer(t *testing.T, handler http.HandlerFunc) *StubServer {
	t.Helper()

	stub := &StubServer{Server: nil, mu: sync.Mutex{}, requests: nil}

	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		stub.mu.Lock()
		stub.requests = append(stub.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		stub.mu.Unlock()

		handler(w, r)
	}))

	t.Cleanup(stub.Close)

	return stub
}

func (s *StubServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

func (s *StubServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests, "Stub server received no requests")

	return requests[len(requests)-1]
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteChunks writes each chunk separately and flushes after every write.
func WriteChunks(w http.ResponseWriter, contentType string, chunks ...string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	for _, chunk := range chunks {
		_, _ = io.WriteString(w, chunk)

		if flusher != nil {
			flusher.Flush()
		}
	}
}

func JSONHandler(status int, payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, payload)
	}
}

func AssertHeader(t *testing.T, req RecordedRequest, header, expectedValue string) {
	t.Helper()
	assert.Equal(t, expectedValue, req.Header.Get(header), "Header %s mismatch", header)
}

func AssertNoHeader(t *testing.T, req RecordedRequest, header string) {
	t.Helper()
	assert.Empty(t, req.Header.Values(header), "Header %s should not be set", header)
}

func MustParseJSONBody(t *testing.T, req RecordedRequest, target any) {
	t.Helper()

	err := json.Unmarshal(req.Body, target)

	require.NoError(t, err, "Failed to parse JSON request body")
}
