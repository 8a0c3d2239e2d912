package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// invokeRequireAuth runs the middleware around a probe handler and reports
// whether the handler ran, what claims it saw, and the middleware's error.
func invokeRequireAuth(t *testing.T, cookie *http.Cookie) (handlerRan bool, claims *SessionClaims, err error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/balance", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireAuth(testIssuer())
	err = mw(func(c echo.Context) error {
		handlerRan = true
		claims = GetClaims(c)
		return nil
	})(c)
	return handlerRan, claims, err
}

func TestRequireAuth_NoCookie(t *testing.T) {
	ran, _, err := invokeRequireAuth(t, nil)
	if ran {
		t.Error("handler must not run without a token")
	}
	assertAppError(t, err, 401)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	ran, _, err := invokeRequireAuth(t, &http.Cookie{Name: "token", Value: "garbage"})
	if ran {
		t.Error("handler must not run with an invalid token")
	}
	assertAppError(t, err, 403)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	expired := NewTokenIssuer("test-secret-test-secret-test-secret", -time.Second)
	token, _, err := expired.Issue(&User{UID: 7, Username: "alice", Role: RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ran, _, mwErr := invokeRequireAuth(t, &http.Cookie{Name: "token", Value: token})
	if ran {
		t.Error("handler must not run with an expired token")
	}
	assertAppError(t, mwErr, 403)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, _, err := testIssuer().Issue(&User{UID: 7, Username: "alice", Role: RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ran, claims, mwErr := invokeRequireAuth(t, &http.Cookie{Name: "token", Value: token})
	if mwErr != nil {
		t.Fatalf("unexpected error: %v", mwErr)
	}
	if !ran {
		t.Fatal("handler did not run for a valid token")
	}
	if claims == nil {
		t.Fatal("claims missing from context")
	}
	if claims.Subject != "alice" || claims.UID != 7 || claims.Role != RoleCustomer {
		t.Errorf("unexpected claims: sub=%s role=%s uid=%d", claims.Subject, claims.Role, claims.UID)
	}
}

func TestGetClaims_Unauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if GetClaims(c) != nil {
		t.Error("expected nil claims without the middleware")
	}
}
