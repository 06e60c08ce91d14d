package jigsawstack_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	jigsawstack "github.com/jigsawstack/jigsawstack-go"
	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "sk_test_key"

func newTestClient(
	t *testing.T,
	handler http.HandlerFunc,
	opts ...jigsawstack.ClientOption,
) (*jigsawstack.Client, *testutil.StubServer) {
	t.Helper()

	server := testutil.NewStubServer(t, handler)

	client, err := jigsawstack.New(testAPIKey, append([]jigsawstack.ClientOption{
		jigsawstack.WithBaseURL(server.URL),
	}, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, server
}

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := jigsawstack.New("")

	require.ErrorIs(t, err, jigsawstack.ErrMissingAPIKey)
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := jigsawstack.New(testAPIKey, jigsawstack.WithBaseURL("not a url"))

	require.ErrorIs(t, err, httpclient.ErrInvalidConfig)
}

func TestNew_DefaultsBaseURL(t *testing.T) {
	t.Parallel()

	client, err := jigsawstack.New(testAPIKey)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, httpclient.DefaultBaseURL, client.Transport().BaseURL())
	assert.Same(t, client.Transport(), client.AsyncTransport().Client())
}

func TestClient_SendsIdentityHeaders(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t,
		testutil.JSONHandler(http.StatusOK, map[string]any{"success": true, "sentiment": map[string]any{}}),
		jigsawstack.WithDisableRequestLogging(true),
		jigsawstack.WithHeaders(map[string]string{"x-team": "search"}),
	)

	_, err := client.Sentiment.Analyze(t.Context(), &jigsawstack.SentimentParams{Text: "great"})
	require.NoError(t, err)

	req := server.LastRequest(t)
	testutil.AssertHeader(t, req, httpclient.HeaderAPIKey, testAPIKey)
	testutil.AssertHeader(t, req, httpclient.HeaderNoRequestLog, "true")
	testutil.AssertHeader(t, req, "X-Team", "search")
	testutil.AssertHeader(t, req, httpclient.HeaderUserAgent, "jigsawstack-go/"+jigsawstack.Version)
	assert.NotEmpty(t, req.Header.Get(httpclient.HeaderXRequestID))
}

func TestClient_HTTPOptionsReachTransport(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		testutil.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}, jigsawstack.WithHTTPOptions(httpclient.WithTimeout(20*time.Millisecond)))

	_, err := client.Sentiment.Analyze(t.Context(), &jigsawstack.SentimentParams{Text: "slow"})

	require.Error(t, err)
	require.NotErrorIs(t, err, httpclient.ErrAPI)
}

func TestClient_APIErrorsAreMapped(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusForbidden, map[string]any{
		"message": "key revoked",
		"error":   map[string]any{"type": "invalid_api_key"},
	}))

	_, err := client.Summary.Summarize(t.Context(), &jigsawstack.SummaryParams{Text: "long text"})

	require.ErrorIs(t, err, httpclient.ErrAPI)
	require.ErrorIs(t, err, httpclient.ErrInvalidAPIKey)

	apiErr, ok := httpclient.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "key revoked", apiErr.Message)
}

func TestClient_InvalidParamsNeverReachTheAPI(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{"success": true}))

	_, err := client.Sentiment.Analyze(t.Context(), &jigsawstack.SentimentParams{Text: ""})
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)

	_, err = client.Sentiment.Analyze(t.Context(), nil)
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)

	assert.Empty(t, server.Requests())
}

func TestAsync_RunsCallOnPool(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":   true,
		"sentiment": map[string]any{"emotion": "happy", "sentiment": "positive", "score": 0.9},
	}), jigsawstack.WithAsyncWorkers(2), jigsawstack.WithAsyncQueueSize(4))

	futures := make([]*httpclient.Future[*jigsawstack.SentimentResponse], 0, 4)
	for range 4 {
		futures = append(futures, jigsawstack.Async(t.Context(), client,
			func(ctx context.Context) (*jigsawstack.SentimentResponse, error) {
				return client.Sentiment.Analyze(ctx, &jigsawstack.SentimentParams{Text: "great"})
			}))
	}

	for _, future := range futures {
		resp, err := future.Await(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "positive", resp.Sentiment.Sentiment)
	}

	assert.Len(t, server.Requests(), 4)
}

func TestAsync_AfterCloseFails(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{"success": true}))
	require.NoError(t, client.Close())

	future := jigsawstack.Async(t.Context(), client, func(context.Context) (int, error) {
		return 1, nil
	})

	_, err := future.Await(t.Context())
	require.Error(t, err)
}
