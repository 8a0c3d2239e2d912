package chat

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kodnest/kodbank/internal/apperror"
)

// Handler handles HTTP requests for the chat proxy.
type Handler struct {
	service ChatService
}

// NewHandler creates a new chat handler with the given service.
func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

// Chat forwards the caller's message history to the provider and returns
// the reply (POST /api/chat).
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	reply, err := h.service.Complete(c.Request().Context(), req.Messages)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
