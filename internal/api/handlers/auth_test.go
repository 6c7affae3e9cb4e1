package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sportmeet/server/internal/api/problem"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterSuccess(t *testing.T) {
	handler, _ := testAuthHandler()

	rec := postJSON(t, handler.Register, "/api/v1/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp registerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "Registration successful", resp.Message)
	require.Equal(t, "ada@example.com", resp.User.Email)
	require.NotZero(t, resp.User.ID)
	require.NotContains(t, rec.Body.String(), "token")
}

func TestRegisterValidation(t *testing.T) {
	handler, _ := testAuthHandler()

	cases := map[string]string{
		"missing name":   `{"email":"a@example.com","password":"secret123"}`,
		"bad email":      `{"name":"Ada","email":"not-an-email","password":"secret123"}`,
		"short password": `{"name":"Ada","email":"a@example.com","password":"abc"}`,
		"broken json":    `{"name":`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(t, handler.Register, "/api/v1/auth/register", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var p problem.ProblemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			require.Equal(t, problem.TypeValidation, p.Type)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler, _ := testAuthHandler()

	body := `{"name":"Ada","email":"ada@example.com","password":"secret123"}`
	rec := postJSON(t, handler.Register, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, handler.Register, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	var p problem.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, problem.TypeConflict, p.Type)
	require.Equal(t, "This email address is already in use", p.Detail)
}

func TestLoginSuccess(t *testing.T) {
	handler, _ := testAuthHandler()

	rec := postJSON(t, handler.Register, "/api/v1/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, handler.Login, "/api/v1/auth/login",
		`{"email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "ada@example.com", resp.User.Email)

	claims, err := testTokens().Validate(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	handler, _ := testAuthHandler()

	rec := postJSON(t, handler.Register, "/api/v1/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cases := map[string]string{
		"wrong password": `{"email":"ada@example.com","password":"wrong-pass"}`,
		"unknown email":  `{"email":"nobody@example.com","password":"secret123"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(t, handler.Login, "/api/v1/auth/login", body)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var p problem.ProblemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			require.Equal(t, problem.TypeUnauthorized, p.Type)
			require.Equal(t, "Invalid email or password", p.Detail)
		})
	}
}
