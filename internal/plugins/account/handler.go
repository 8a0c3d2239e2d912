package account

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kodnest/kodbank/internal/apperror"
	"github.com/kodnest/kodbank/internal/plugins/auth"
)

// Handler handles HTTP requests for account reads.
type Handler struct {
	service AccountService
}

// NewHandler creates a new account handler with the given service.
func NewHandler(service AccountService) *Handler {
	return &Handler{service: service}
}

// Balance returns the authenticated caller's balance (GET /balance).
// The identity comes from the session claims attached by auth.RequireAuth;
// anything the client sends in the request is ignored.
func (h *Handler) Balance(c echo.Context) error {
	claims := auth.GetClaims(c)
	if claims == nil {
		return apperror.NewUnauthorized("access denied: no token provided")
	}

	balance, err := h.service.Balance(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		Balance:  balance,
		Username: claims.Subject,
	})
}
