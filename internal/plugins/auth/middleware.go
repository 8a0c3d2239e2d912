package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/kodnest/kodbank/internal/apperror"
)

// claimsContextKey is the Echo context key for the validated session claims.
// Other plugins use the exported getter below to access the authenticated
// user's identity.
const claimsContextKey = "auth_claims"

// RequireAuth returns middleware that validates the session cookie and
// injects the decoded claims into the request context.
//
// Three outcomes, per request:
//   - cookie absent            -> 401, no token was presented at all
//   - bad signature or expired -> 403, a token was presented but rejected
//   - valid                    -> claims stored in context, request proceeds
//
// Validation is pure: signature plus expiry check against the shared
// secret. The user_tokens ledger is never consulted, so a logged-out
// token stays valid until its natural expiry.
func RequireAuth(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := getSessionToken(c)
			if token == "" {
				return apperror.NewUnauthorized("access denied: no token provided")
			}

			claims, err := issuer.Parse(token)
			if err != nil {
				return apperror.NewForbidden("invalid token")
			}

			c.Set(claimsContextKey, claims)

			return next(c)
		}
	}
}

// GetClaims retrieves the validated session claims from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetClaims(c echo.Context) *SessionClaims {
	claims, ok := c.Get(claimsContextKey).(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
