package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("httpclient: rate limit must be greater than zero")
	ErrRateLimitWait = errors.New("httpclient: rate limiter wait failed")
)

type rateLimit struct {
	rps   float64
	burst int
}

func (r rateLimit) enabled() bool {
	return r.rps > 0 && r.burst > 0
}

// throttle is an http.RoundTripper that uses a token bucket to restrict
// outbound calls.
type throttle struct {
	limiter *rate.Limiter
	next    http.RoundTripper
	logger  zerolog.Logger
}

func NewRoundTripper(rps float64, burst int, logger zerolog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if rps <= 0 || burst <= 0 {
		return nil, fmt.Errorf("%w: rps=%v burst=%d", ErrMustNotBeZero, rps, burst)
	}

	if next == nil {
		next = http.DefaultTransport
	}

	return &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		next:    next,
		logger:  logger,
	}, nil
}

func (t *throttle) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}

		t.logger.Warn().Err(err).Str("url", req.URL.Redacted()).Msg("Rate limiter wait failed.")

		return nil, fmt.Errorf("%w: %w", ErrRateLimitWait, err)
	}

	return t.next.RoundTrip(req)
}

var _ http.RoundTripper = (*throttle)(nil)
