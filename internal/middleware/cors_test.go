package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// corsRequest runs the CORS middleware for a request with the given Origin.
func corsRequest(t *testing.T, cfg CORSConfig, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/login", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := CORS(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestCORS_AllowedOriginGetsCredentialedHeaders(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://bank.example.com"},
		AllowCredentials: true,
	}

	rec := corsRequest(t, cfg, http.MethodPost, "https://bank.example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://bank.example.com" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials to be allowed for a whitelisted origin")
	}
}

func TestCORS_UnlistedOriginGetsNoHeaders(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://bank.example.com"},
		AllowCredentials: true,
	}

	rec := corsRequest(t, cfg, http.MethodPost, "https://evil.example.com")
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unlisted origin must not receive CORS headers")
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://bank.example.com"},
		AllowCredentials: true,
	}

	rec := corsRequest(t, cfg, http.MethodOptions, "https://bank.example.com")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight response missing allowed methods")
	}
}

func TestCORS_WildcardWithCredentialsRefused(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
	}

	rec := corsRequest(t, cfg, http.MethodPost, "https://anything.example.com")
	if rec.Header().Get("Access-Control-Allow-Credentials") == "true" {
		t.Error("credentials must not be sent for a wildcard origin")
	}
}

func TestCORS_SameOriginSkipped(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://bank.example.com"},
		AllowCredentials: true,
	}

	rec := corsRequest(t, cfg, http.MethodGet, "")
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("same-origin request should not receive CORS headers")
	}
}
