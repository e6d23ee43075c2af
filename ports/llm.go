package ports

import "context"

// LLMClient is the provider-facing chat interface shared by the
// generation, extraction, and judge adapters.
type LLMClient interface {
	ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error)
}
