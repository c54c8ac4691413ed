//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertRetryAfter checks the Retry-After seconds sent with 503 answers; an empty want asserts the header is absent.
func AssertRetryAfter(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	got, present := w.Header()["Retry-After"]
	if want == "" {
		assert.False(t, present, "unexpected Retry-After %v", got)
		return
	}
	assert.Equal(t, []string{want}, got)
}
