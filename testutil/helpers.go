package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// LiveAPIKeyEnv opts a test run into calling the real API.
const LiveAPIKeyEnv = "JIGSAWSTACK_LIVE_API_KEY"

// RandomKey returns prefix followed by a random hex suffix, suitable for
// store and KV keys that must not collide between parallel tests.
func RandomKey(prefix string) string {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return prefix
	}

	return prefix + "-" + hex.EncodeToString(suffix)
}

func RandomEmail() string {
	return RandomKey("user") + "@example.com"
}

// Eventually fails t unless condition holds before timeout, polling every
// interval.
func Eventually(t *testing.T, condition func() bool, timeout time.Duration, interval time.Duration) {
	t.Helper()

	require.Eventually(t, condition, timeout, interval, "Condition not met within %s", timeout)
}

// LiveAPIKey skips the test unless LiveAPIKeyEnv is set.
func LiveAPIKey(t *testing.T) string {
	t.Helper()

	key := os.Getenv(LiveAPIKeyEnv)
	if key == "" {
		t.Skipf("Set %s to run tests against the live API", LiveAPIKeyEnv)
	}

	return key
}
