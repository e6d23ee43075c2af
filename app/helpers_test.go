package app

import (
	"context"
	"errors"
	"sync"

	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
)

// validHand is a closed tanyao pinfu hand worth 2000 on a ron.
func validHand() *mahjong.Hand {
	return &mahjong.Hand{
		Tiles:   []string{"2m", "3m", "4m", "4m", "5m", "6m", "5p", "6p", "7p", "2s", "3s", "4s", "8s", "8s"},
		WinTile: "4s",
	}
}

func validScore() *mahjong.ScoreResult {
	return &mahjong.ScoreResult{Points: 2000, Han: 2, Fu: 30, Yaku: []string{"Pinfu", "Tanyao"}}
}

type stubGenerator struct {
	mu      sync.Mutex
	calls   int
	errText string // when non-empty every call fails with this text
	// byInstruction overrides behavior per instruction text
	failFor map[string]bool
}

func (s *stubGenerator) Generate(ctx context.Context, instruction puzzle.Instruction) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.errText != "" {
		return "", errors.New(s.errText)
	}
	if s.failFor[instruction.Text] {
		return "", errors.New("generation refused")
	}
	return "question for: " + instruction.Text, nil
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubExtractor struct {
	mu    sync.Mutex
	calls int
	hand  *mahjong.Hand
	err   error
	// script, when non-empty, supplies per-call results in order.
	script []extractResult
}

type extractResult struct {
	hand *mahjong.Hand
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, question string) (*mahjong.Hand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.script) > 0 {
		r := s.script[0]
		s.script = s.script[1:]
		return r.hand, r.err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.hand, nil
}

func (s *stubExtractor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubEngine struct {
	mu    sync.Mutex
	calls int
	score *mahjong.ScoreResult
	err   error
}

func (s *stubEngine) Compute(ctx context.Context, hand *mahjong.Hand) (*mahjong.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.score, nil
}

func (s *stubEngine) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubJudge struct {
	mu      sync.Mutex
	calls   int
	verdict puzzle.ComplianceResult
	err     error
}

func (s *stubJudge) Judge(ctx context.Context, instruction puzzle.Instruction, score *mahjong.ScoreResult) (puzzle.ComplianceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return puzzle.ComplianceResult{}, s.err
	}
	return s.verdict, nil
}

type stubRepo struct {
	mu    sync.Mutex
	saved []*puzzle.BatchResult
}

func (s *stubRepo) SaveBatch(ctx context.Context, result *puzzle.BatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, result)
	return nil
}

func (s *stubRepo) GetBatch(ctx context.Context, batchID string) (*puzzle.BatchResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRepo) ListBatches(ctx context.Context, limit int) ([]puzzle.GlobalSummary, error) {
	return nil, errors.New("not implemented")
}
