package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kodnest/kodbank/internal/config"
)

// model and maxTokens are fixed by the proxy; callers only control the
// message history.
const (
	model     = "Qwen/Qwen2.5-72B-Instruct"
	maxTokens = 500
)

// Completer produces a reply for a message history. Satisfied by
// ProviderClient; tests substitute their own.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ProviderClient calls the configured chat completions endpoint.
type ProviderClient struct {
	cfg    config.ProviderConfig
	client *http.Client
}

// NewProviderClient creates a provider client from the given config.
func NewProviderClient(cfg config.ProviderConfig) *ProviderClient {
	return &ProviderClient{
		cfg: cfg,
		// Timeout on the client as well as the per-request context: the
		// provider is outside our control and must not pin a request.
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete forwards the message history to the provider and returns the
// first choice's content. Every failure mode (network, non-2xx status,
// malformed body) is returned as a plain error for the service to wrap;
// the provider's response body never travels further than the error chain.
func (p *ProviderClient) Complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling provider: %w", err)
	}
	defer resp.Body.Close()

	// Cap the body read; a misbehaving provider should not be able to
	// balloon memory.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, body)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decoding provider response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}

	reply := completion.Choices[0].Message.Content
	if reply == "" {
		reply = "No response from AI."
	}
	return reply, nil
}
