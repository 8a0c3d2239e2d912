package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kodnest/kodbank/internal/plugins/auth"
)

// balanceRequest runs the Balance handler for an optionally authenticated
// request. body simulates a caller trying to smuggle someone else's id.
func balanceRequest(t *testing.T, svc AccountService, authed bool, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/balance", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(svc)
	handler := h.Balance
	if authed {
		// Run through the real middleware so the claims land in context the
		// same way they do in production.
		issuer := auth.NewTokenIssuer("test-secret-test-secret-test-secret", time.Hour)
		token, _, err := issuer.Issue(&auth.User{UID: 7, Username: "alice", Role: auth.RoleCustomer})
		if err != nil {
			t.Fatalf("issuing test token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		handler = auth.RequireAuth(issuer)(h.Balance)
	}

	return rec, handler(c)
}

func TestBalanceHandler_UsesClaimsIdentityOnly(t *testing.T) {
	var lookedUp string
	repo := &mockAccountRepo{
		balanceByUsernameFn: func(ctx context.Context, username string) (decimal.Decimal, error) {
			lookedUp = username
			return decimal.RequireFromString("100000.00"), nil
		},
	}

	// The body names a different user; the handler must ignore it.
	rec, err := balanceRequest(t, NewAccountService(repo), true, `{"username":"mallory","uid":99}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookedUp != "alice" {
		t.Errorf("expected lookup for the authenticated user alice, got %q", lookedUp)
	}

	var body BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Username != "alice" {
		t.Errorf("expected username alice, got %s", body.Username)
	}
	if !body.Balance.Equal(decimal.RequireFromString("100000.00")) {
		t.Errorf("expected balance 100000.00, got %s", body.Balance)
	}
}

func TestBalanceHandler_Unauthenticated(t *testing.T) {
	_, err := balanceRequest(t, NewAccountService(&mockAccountRepo{}), false, "")
	assertAppError(t, err, 401)
}
