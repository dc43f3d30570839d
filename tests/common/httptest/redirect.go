//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertRedirect checks the status and returns the parsed Location for further checks.
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) *url.URL {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err, "Location header is not a URL")
	return location
}
