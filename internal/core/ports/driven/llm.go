package driven

import "context"

// LLMService provides chat completions for the reflection emails.
//
// Implementations may include:
//   - OpenAI (gpt-3.5-turbo, gpt-4o)
//   - Local inference servers exposing the same API
type LLMService interface {
	// Chat conducts a single-turn or multi-turn conversation and returns
	// the assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures a chat completion.
type ChatOptions struct {
	// Model selects the model, e.g. "gpt-3.5-turbo" or "gpt-4o".
	// Empty means the implementation's default.
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
