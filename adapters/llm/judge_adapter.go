package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
	"yakugen/ports"
)

// JudgeAdapter implements ports.ComplianceJudge using an LLM. It asks
// whether the validated result satisfies the conditions the instruction
// states, nothing more.
type JudgeAdapter struct {
	config Config
	client ports.LLMClient
}

var _ ports.ComplianceJudge = (*JudgeAdapter)(nil)

// NewJudgeAdapter creates a new LLM compliance judge.
func NewJudgeAdapter(config Config) (*JudgeAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &JudgeAdapter{config: config, client: client}, nil
}

// NewJudgeAdapterWithClient wires an explicit client (tests, mocks).
func NewJudgeAdapterWithClient(config Config, client ports.LLMClient) *JudgeAdapter {
	return &JudgeAdapter{config: config, client: client}
}

func (a *JudgeAdapter) Judge(ctx context.Context, instruction puzzle.Instruction, score *mahjong.ScoreResult) (puzzle.ComplianceResult, error) {
	prompt := fmt.Sprintf(judgePrompt, instruction.Text,
		score.Points, score.Han, score.Fu, score.Yaku)

	content, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return puzzle.ComplianceResult{}, fmt.Errorf("compliance judge call failed: %w", err)
	}

	verdict := parseVerdict(content)
	log.Printf("[JudgeAdapter] compliant=%t for instruction %q",
		verdict.Compliant, truncate(instruction.Text, 60))
	return verdict, nil
}

// parseVerdict reads the "Yes/No\nReason: ..." answer shape, tolerating
// case and missing reason lines. Anything that does not lead with yes is
// treated as non-compliant.
func parseVerdict(content string) puzzle.ComplianceResult {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)

	compliant := strings.HasPrefix(lower, "yes")

	reason := trimmed
	if idx := strings.Index(lower, "reason:"); idx >= 0 {
		reason = strings.TrimSpace(trimmed[idx+len("reason:"):])
	} else if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		reason = strings.TrimSpace(trimmed[nl+1:])
	}

	return puzzle.ComplianceResult{Compliant: compliant, Reason: reason}
}
