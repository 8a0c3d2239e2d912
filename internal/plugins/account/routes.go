package account

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up account routes on the given group. The caller is
// expected to pass a group already wrapped in auth.RequireAuth.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/balance", h.Balance)
}
