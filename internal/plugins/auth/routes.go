package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Auth routes are public (no session required) -- the RequireAuth middleware
// is exported separately for other plugins to use on their route groups.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)

	// Logout only clears the cookie; it works with or without a session.
	e.POST("/logout", h.Logout)
}
