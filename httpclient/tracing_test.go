package httpclient_test

import (
	"net/http"
	"testing"

	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTracedClient(t *testing.T, baseURL string) (*httpclient.Client, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() {
		_ = provider.Shutdown(t.Context())
	})

	return newTestClient(t, baseURL, httpclient.WithTracerProvider(provider)), exporter
}

func spanAttribute(span tracetest.SpanStub, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestTracing_RecordsClientSpan(t *testing.T) {
	t.Parallel()

	server := testutil.NewStubServer(t, testutil.JSONHandler(http.StatusOK, map[string]any{"ok": true}))
	client, exporter := newTracedClient(t, server.URL)

	_, err := client.Perform(t.Context(), &httpclient.Request{Method: http.MethodGet, Path: "/ai/sentiment"}, //nolint:exhaustruct
		httpclient.WithRequestID("req-1"))
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "jigsawstack GET /ai/sentiment", span.Name)
	assert.Equal(t, trace.SpanKindClient, span.SpanKind)
	assert.Equal(t, codes.Ok, span.Status.Code)

	status, ok := spanAttribute(span, "http.response.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())

	requestID, ok := spanAttribute(span, "jigsawstack.request_id")
	require.True(t, ok)
	assert.Equal(t, "req-1", requestID.AsString())
}

func TestTracing_MarksAPIErrors(t *testing.T) {
	t.Parallel()

	server := testutil.NewStubServer(t, testutil.JSONHandler(http.StatusUnprocessableEntity, map[string]any{
		"message": "text is required",
	}))
	client, exporter := newTracedClient(t, server.URL)

	_, err := client.Perform(t.Context(), &httpclient.Request{Method: http.MethodPost, Path: "/ai/summary"}) //nolint:exhaustruct
	require.ErrorIs(t, err, httpclient.ErrMissingRequiredFields)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.NotEmpty(t, spans[0].Events, "error should be recorded as a span event")
}

func TestTracing_StreamSpanEndsWhenStreamOpens(t *testing.T) {
	t.Parallel()

	server := testutil.NewStubServer(t, func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteChunks(w, "text/plain", "a", "b")
	})
	client, exporter := newTracedClient(t, server.URL)

	stream, err := client.PerformStreaming(t.Context(), &httpclient.Request{ //nolint:exhaustruct
		Method: http.MethodPost,
		Path:   "/prompt_engine/pe_1",
		Stream: true,
	})
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	streaming, ok := spanAttribute(spans[0], "jigsawstack.stream")
	require.True(t, ok)
	assert.True(t, streaming.AsBool())

	require.NoError(t, stream.Close())
}
