//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorBody is the wire shape written by httperr.AbortWithError.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    json.RawMessage `json:"detail"`
	RequestID string          `json:"requestId"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if targetStruct != nil && expectedStatus >= 200 && expectedStatus < 300 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "response is not JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the user-facing message contains expectedErrorMsg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	body := decodeErrorBody(t, w)
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
}

// DecodeErrorDetail decodes the "detail" object of an error response into target.
func DecodeErrorDetail(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()

	body := decodeErrorBody(t, w)
	require.NotEmpty(t, body.Detail, "error response has no detail: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(body.Detail, target))
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "error response is not JSON: %s", w.Body.String())
	return body
}
