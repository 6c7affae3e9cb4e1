package problem

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSetsProblemFields(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/events/99", nil)

	Write(w, r, 404, TypeNotFound, "Not found", errors.New("event not found"), "development")

	require.Equal(t, 404, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, TypeNotFound, body.Type)
	require.Equal(t, "Not found", body.Title)
	require.Equal(t, 404, body.Status)
	require.Equal(t, "event not found", body.Detail)
	require.Equal(t, "/api/v1/events/99", body.Instance)
}

func TestWriteHidesDetailInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/v1/stats", nil)

	Write(w, r, 500, TypeServerError, "Server error", errors.New("pq: connection refused"), "production")

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Internal Server Error", body.Detail)
	require.NotContains(t, w.Body.String(), "connection refused")
}

func TestWriteWithOptions(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/v1/events", nil)

	Write(w, r, 400, TypeValidation, "Invalid request", nil, "development",
		WithDetail("max_participants must be at least 1"),
		WithErrors(map[string]interface{}{"max_participants": "gt"}),
	)

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "max_participants must be at least 1", body.Detail)
	require.Equal(t, "gt", body.Errors["max_participants"])
}
