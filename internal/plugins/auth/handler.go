package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kodnest/kodbank/internal/apperror"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "token"

// Handler handles HTTP requests for authentication (register, login, logout).
// Handlers are thin: they bind the request, call the service, and render the
// response. No business logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Register processes a registration submission (POST /register).
// Nothing sensitive is echoed back on success -- just a message.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input := RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}

	if _, err := h.service.Register(c.Request().Context(), input); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

// Login processes a login submission (POST /login). On success the session
// token is set as a cookie and the frontend is told where to navigate.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input := LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	token, expiry, _, err := h.service.Login(c.Request().Context(), input)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, expiry)

	return c.JSON(http.StatusOK, map[string]string{
		"message":  "Login successful",
		"redirect": "/dashboard",
	})
}

// Logout clears the session cookie (POST /logout). The issued token stays
// in the ledger and remains cryptographically valid until it expires --
// stateless JWT logout, the deliberate trade-off of not consulting the
// ledger on every request.
func (h *Handler) Logout(c echo.Context) error {
	clearSessionCookie(c)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The frontend
// lives on a different origin, so the cookie must be SameSite=None, which
// in turn requires Secure. HttpOnly keeps it away from page scripts. The
// cookie lifetime matches the token's remaining validity.
func setSessionCookie(c echo.Context, token string, expiry time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(time.Until(expiry).Seconds()),
	})
}

// clearSessionCookie removes the session cookie by setting MaxAge to -1.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}
