// Package chat proxies authenticated chat requests to an external hosted
// language model behind an OpenAI-compatible chat completions API. The
// proxy forwards the caller's message history verbatim with a fixed model
// identifier and token budget, and returns the first reply's text.
package chat

// Message is a single conversational turn, passed through to the provider
// unchanged.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the JSON body accepted by POST /api/chat.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// ChatResponse is the JSON body returned by POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// --- Provider wire format (OpenAI-compatible) ---

// completionRequest is the payload sent to the provider.
type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

// completionResponse is the subset of the provider reply we read.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
