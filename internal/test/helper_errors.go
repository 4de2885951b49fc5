package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/types"
)

// RequireHTTPError asserts the recorded response is an error of the given
// status and type and returns the decoded body.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, status int, errorType string) types.HTTPValidationError {
	t.Helper()

	require.Equal(t, status, res.Result().StatusCode, res.Body.String())

	var body types.HTTPValidationError
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, int64(status), body.Code)
	require.Equal(t, errorType, body.Type)

	return body
}
