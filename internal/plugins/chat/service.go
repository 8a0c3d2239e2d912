package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kodnest/kodbank/internal/apperror"
)

// ChatService defines the business logic contract for the chat proxy.
type ChatService interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// chatService implements ChatService over a Completer.
type chatService struct {
	provider   Completer
	configured bool
}

// NewChatService creates a new chat service. configured reflects whether a
// provider API key was supplied at startup; without one the endpoint
// reports a configuration error instead of sending doomed requests.
func NewChatService(provider Completer, configured bool) ChatService {
	return &chatService{provider: provider, configured: configured}
}

// Complete validates the message history and forwards it to the provider.
// Provider failures of every kind surface as one generic upstream error;
// the real cause is logged server-side and never shown to the caller.
// No retry, no backoff -- the frontend simply tells the user to try again.
func (s *chatService) Complete(ctx context.Context, messages []Message) (string, error) {
	if !s.configured {
		return "", apperror.NewInternal(errors.New("AI provider API key not configured"))
	}

	if len(messages) == 0 {
		return "", apperror.NewBadRequest("messages are required")
	}
	for _, m := range messages {
		if m.Role == "" || m.Content == "" {
			return "", apperror.NewBadRequest("each message needs a role and content")
		}
	}

	reply, err := s.provider.Complete(ctx, messages)
	if err != nil {
		slog.Error("provider call failed", slog.Any("error", err))
		return "", apperror.NewUpstream(fmt.Errorf("completing chat: %w", err))
	}

	return reply, nil
}
