package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kodnest/kodbank/internal/plugins/account"
	"github.com/kodnest/kodbank/internal/plugins/auth"
	"github.com/kodnest/kodbank/internal/plugins/chat"
)

// RegisterRoutes sets up all application routes. It constructs each plugin's
// service stack from the shared infrastructure and delegates to the plugin's
// route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Public Routes (no auth required) ---

	// Health check endpoint for Docker health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Auth plugin (public: register, login, logout) ---
	issuer := auth.NewTokenIssuer(a.Config.Auth.JWTSecret, a.Config.Auth.TokenTTL)
	authRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(authRepo, issuer)
	auth.RegisterRoutes(e, auth.NewHandler(authService))

	// Authenticated route group -- all routes below require a valid token.
	authed := e.Group("", auth.RequireAuth(issuer))

	// --- Account plugin ---
	accountRepo := account.NewAccountRepository(a.DB)
	accountService := account.NewAccountService(accountRepo)
	account.RegisterRoutes(authed, account.NewHandler(accountService))

	// --- Chat plugin ---
	provider := chat.NewProviderClient(a.Config.Provider)
	chatService := chat.NewChatService(provider, a.Config.Provider.APIKey != "")
	chat.RegisterRoutes(authed, chat.NewHandler(chatService))
}
