package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"yakugen/domain/core"
	"yakugen/domain/puzzle"
	"yakugen/ports"
)

// QuestionAdapter implements ports.QuestionGenerator using an LLM.
type QuestionAdapter struct {
	config Config
	client ports.LLMClient
}

var _ ports.QuestionGenerator = (*QuestionAdapter)(nil)

// NewQuestionAdapter creates a new LLM question generator.
func NewQuestionAdapter(config Config) (*QuestionAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &QuestionAdapter{config: config, client: client}, nil
}

// NewQuestionAdapterWithClient wires an explicit client (tests, mocks).
func NewQuestionAdapterWithClient(config Config, client ports.LLMClient) *QuestionAdapter {
	return &QuestionAdapter{config: config, client: client}
}

func (a *QuestionAdapter) Generate(ctx context.Context, instruction puzzle.Instruction) (string, error) {
	prompt := fmt.Sprintf(questionPrompt, instruction.Text)

	content, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrGenerationFailed, err)
	}

	question := strings.TrimSpace(content)
	if question == "" {
		return "", fmt.Errorf("%w: empty response", core.ErrGenerationFailed)
	}

	log.Printf("[QuestionAdapter] generated question (%d chars) for instruction %q",
		len(question), truncate(instruction.Text, 60))
	return question, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
