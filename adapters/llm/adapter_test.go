package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"yakugen/domain/core"
	"yakugen/domain/puzzle"
)

func TestQuestionAdapterGenerate(t *testing.T) {
	mock := &MockLLMClient{Response: "  East round, you are the dealer... winning tile is 8s.  "}
	adapter := NewQuestionAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	question, err := adapter.Generate(context.Background(), puzzle.Instruction{Text: "make a tanyao hand"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if question != "East round, you are the dealer... winning tile is 8s." {
		t.Errorf("unexpected question: %q", question)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 LLM call, got %d", mock.CallCount())
	}
}

func TestMockClientCountsConcurrentCalls(t *testing.T) {
	mock := &MockLLMClient{Response: "ok"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = mock.ChatCompletion(context.Background(), "gpt-4o-mini", "prompt", 64)
		}()
	}
	wg.Wait()

	if mock.CallCount() != 20 {
		t.Errorf("expected 20 LLM calls, got %d", mock.CallCount())
	}
}

func TestQuestionAdapterWrapsClientError(t *testing.T) {
	mock := &MockLLMClient{Error: errors.New("rate limited")}
	adapter := NewQuestionAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	_, err := adapter.Generate(context.Background(), puzzle.Instruction{Text: "anything"})
	if !errors.Is(err, core.ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestExtractorAdapterParsesFencedJSON(t *testing.T) {
	mock := &MockLLMClient{Response: "```json\n" + `{
		"tiles": ["2m","3m","4m","4m","5m","6m","5p","6p","7p","2s","3s","4s","8s","8s"],
		"win_tile": "4s",
		"is_tsumo": true,
		"player_wind": "east",
		"round_wind": "east"
	}` + "\n```"}
	adapter := NewExtractorAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	hand, err := adapter.Extract(context.Background(), "some question")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(hand.Tiles) != 14 {
		t.Errorf("tiles = %d, want 14", len(hand.Tiles))
	}
	if hand.WinTile != "4s" || !hand.IsTsumo {
		t.Errorf("unexpected hand: win=%s tsumo=%t", hand.WinTile, hand.IsTsumo)
	}
}

func TestExtractorAdapterRejectsEmptyHand(t *testing.T) {
	mock := &MockLLMClient{Response: `{"win_tile": "4s"}`}
	adapter := NewExtractorAdapterWithClient(Config{Model: "gpt-4o-mini"}, mock)

	_, err := adapter.Extract(context.Background(), "some question")
	if !errors.Is(err, core.ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestCleanJSONContentStripsChatter(t *testing.T) {
	raw := "Here is the JSON you asked for:\n{\"tiles\": [\"1m\"]}\nLet me know if you need anything else."
	cleaned := cleanJSONContent(raw)
	if cleaned != `{"tiles": ["1m"]}` {
		t.Errorf("cleaned = %q", cleaned)
	}
}

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		content   string
		compliant bool
		reason    string
	}{
		{"Yes\nReason: tanyao present and score matches", true, "tanyao present and score matches"},
		{"No\nReason: yaku list lacks sanshoku", false, "yaku list lacks sanshoku"},
		{"yes, all conditions hold", true, "yes, all conditions hold"},
		{"I cannot determine this", false, "I cannot determine this"},
	}
	for _, tc := range cases {
		got := parseVerdict(tc.content)
		if got.Compliant != tc.compliant {
			t.Errorf("%q: compliant = %t, want %t", tc.content, got.Compliant, tc.compliant)
		}
		if got.Reason != tc.reason {
			t.Errorf("%q: reason = %q, want %q", tc.content, got.Reason, tc.reason)
		}
	}
}
