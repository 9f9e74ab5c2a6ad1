// Package testutil provides common helpers for handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// APIEnvelope mirrors the wire shape every endpoint responds with.
type APIEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewJSONRequest creates an HTTP request with a JSON body.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest creates a simple HTTP request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeEnvelope unmarshals the response body as the standard API envelope.
func DecodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIEnvelope {
	t.Helper()
	var env APIEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "failed to unmarshal envelope")
	return env
}

// DecodeData unmarshals the envelope's data payload into T.
func DecodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	env := DecodeEnvelope(t, rr)
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "failed to unmarshal envelope data")
	return out
}
