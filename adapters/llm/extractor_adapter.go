package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"yakugen/domain/core"
	"yakugen/domain/mahjong"
	"yakugen/ports"
)

// ExtractorAdapter implements ports.HandExtractor using an LLM with a
// strict JSON output contract.
type ExtractorAdapter struct {
	config Config
	client ports.LLMClient
}

var _ ports.HandExtractor = (*ExtractorAdapter)(nil)

// NewExtractorAdapter creates a new LLM hand extractor.
func NewExtractorAdapter(config Config) (*ExtractorAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &ExtractorAdapter{config: config, client: client}, nil
}

// NewExtractorAdapterWithClient wires an explicit client (tests, mocks).
func NewExtractorAdapterWithClient(config Config, client ports.LLMClient) *ExtractorAdapter {
	return &ExtractorAdapter{config: config, client: client}
}

func (a *ExtractorAdapter) Extract(ctx context.Context, question string) (*mahjong.Hand, error) {
	prompt := fmt.Sprintf(extractionPrompt, question)

	content, err := a.client.ChatCompletion(ctx, a.config.Model, prompt, a.config.MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrExtractionFailed, err)
	}

	cleaned := cleanJSONContent(content)

	var hand mahjong.Hand
	if err := json.Unmarshal([]byte(cleaned), &hand); err != nil {
		log.Printf("[ExtractorAdapter] ERROR: failed to parse hand JSON: %v", err)
		return nil, fmt.Errorf("%w: invalid hand JSON: %v", core.ErrExtractionFailed, err)
	}

	if len(hand.Tiles) == 0 {
		return nil, fmt.Errorf("%w: response has no tiles", core.ErrExtractionFailed)
	}

	log.Printf("[ExtractorAdapter] extracted hand: %d tiles, %d melds, win_tile=%s",
		len(hand.Tiles), len(hand.Melds), hand.WinTile)
	return &hand, nil
}

// cleanJSONContent removes markdown code blocks and chatter around the JSON
// payload. Models wrap JSON in fences or preface it despite instructions.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop chatter lines before the first brace.
	if idx := strings.Index(content, "{"); idx > 0 {
		content = content[idx:]
	}
	if idx := strings.LastIndex(content, "}"); idx >= 0 && idx < len(content)-1 {
		content = content[:idx+1]
	}

	return content
}
