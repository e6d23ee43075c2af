package app

import (
	"context"
	"testing"

	"yakugen/domain/puzzle"
	apperrors "yakugen/internal/errors"
	"yakugen/ports"
)

func newTestCoordinator(gen *stubGenerator, judge ports.ComplianceJudge, repo ports.PuzzleRepository, maxParallel int64) *BatchCoordinator {
	ext := &stubExtractor{hand: validHand()}
	eng := &stubEngine{score: validScore()}
	sampler := newTestSampler(gen, ext, eng, SamplerConfig{})
	return NewBatchCoordinator(sampler, judge, repo, BatchConfig{MaxParallel: maxParallel})
}

func TestRunBatchRejectsBadArguments(t *testing.T) {
	c := newTestCoordinator(&stubGenerator{}, nil, nil, 1)

	_, err := c.RunBatch(context.Background(), nil, 3)
	if apperrors.GetCode(err) != apperrors.CodeInvalidInput {
		t.Errorf("empty instructions: code = %s, want %s", apperrors.GetCode(err), apperrors.CodeInvalidInput)
	}

	_, err = c.RunBatch(context.Background(), []puzzle.Instruction{{Text: "x"}}, 0)
	if apperrors.GetCode(err) != apperrors.CodeInvalidInput {
		t.Errorf("zero count: code = %s, want %s", apperrors.GetCode(err), apperrors.CodeInvalidInput)
	}
}

func TestRunBatchContinuesPastFailingInstruction(t *testing.T) {
	gen := &stubGenerator{failFor: map[string]bool{"bad one": true}}
	c := newTestCoordinator(gen, nil, nil, 2)

	instructions := []puzzle.Instruction{
		{Text: "good one"},
		{Text: "bad one"},
		{Text: "another good one"},
	}
	result, err := c.RunBatch(context.Background(), instructions, 2)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	if result.TotalInstructions != 3 {
		t.Errorf("total instructions = %d, want 3", result.TotalInstructions)
	}
	// Order preserved regardless of scheduling.
	for i, instruction := range instructions {
		if result.PerInstruction[i].Instruction.Text != instruction.Text {
			t.Errorf("slot %d holds %q, want %q", i,
				result.PerInstruction[i].Instruction.Text, instruction.Text)
		}
	}

	bad := result.PerInstruction[1]
	if bad.HadSuccess() || bad.Selected != nil {
		t.Error("failing instruction should have no successes and no selection")
	}
	if !result.PerInstruction[0].HadSuccess() || !result.PerInstruction[2].HadSuccess() {
		t.Error("healthy instructions affected by the failing one")
	}
}

func TestRunBatchTotalsAreSums(t *testing.T) {
	gen := &stubGenerator{failFor: map[string]bool{"bad one": true}}
	c := newTestCoordinator(gen, nil, nil, 1)

	instructions := []puzzle.Instruction{{Text: "a"}, {Text: "bad one"}, {Text: "b"}}
	result, err := c.RunBatch(context.Background(), instructions, 3)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	wantCandidates, wantSuccesses, wantFailures := 0, 0, 0
	for _, r := range result.PerInstruction {
		wantCandidates += len(r.Candidates)
		wantSuccesses += r.SuccessCount
		wantFailures += r.FailureCount
	}
	if result.TotalCandidates != wantCandidates || result.TotalCandidates != 9 {
		t.Errorf("total candidates = %d, want %d", result.TotalCandidates, wantCandidates)
	}
	if result.TotalSuccesses != wantSuccesses || result.TotalSuccesses != 6 {
		t.Errorf("total successes = %d, want %d", result.TotalSuccesses, wantSuccesses)
	}
	if result.TotalFailures != wantFailures || result.TotalFailures != 3 {
		t.Errorf("total failures = %d, want %d", result.TotalFailures, wantFailures)
	}

	if result.SuccessRate != float64(6)/9 {
		t.Errorf("success rate = %f", result.SuccessRate)
	}
	if result.InstructionSuccessRate != float64(2)/3 {
		t.Errorf("instruction success rate = %f", result.InstructionSuccessRate)
	}
	if result.MinSuccesses != 0 || result.MaxSuccesses != 3 {
		t.Errorf("min/max successes = %d/%d, want 0/3", result.MinSuccesses, result.MaxSuccesses)
	}
	if result.MeanSuccessesPerInstruction != 2 {
		t.Errorf("mean successes = %f, want 2", result.MeanSuccessesPerInstruction)
	}
}

func TestRunBatchJudgesSelectedCandidates(t *testing.T) {
	judge := &stubJudge{verdict: puzzle.ComplianceResult{Compliant: true, Reason: "conditions hold"}}
	c := newTestCoordinator(&stubGenerator{}, judge, nil, 1)

	result, err := c.RunBatch(context.Background(), []puzzle.Instruction{{Text: "a"}, {Text: "b"}}, 2)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}

	for i, r := range result.PerInstruction {
		if r.Selected == nil || r.Selected.Compliance == nil {
			t.Fatalf("instruction %d: selected candidate not judged", i)
		}
		if !r.Selected.Compliance.Compliant {
			t.Errorf("instruction %d: unexpected verdict %+v", i, r.Selected.Compliance)
		}
	}
	if result.ComplianceRate != 1 {
		t.Errorf("compliance rate = %f, want 1", result.ComplianceRate)
	}
}

func TestRunBatchComplianceRateUnsetWithoutJudge(t *testing.T) {
	c := newTestCoordinator(&stubGenerator{}, nil, nil, 1)
	result, err := c.RunBatch(context.Background(), []puzzle.Instruction{{Text: "a"}}, 1)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if result.ComplianceRate != -1 {
		t.Errorf("compliance rate = %f, want -1 when the judge never ran", result.ComplianceRate)
	}
}

func TestRunBatchPersistsResult(t *testing.T) {
	repo := &stubRepo{}
	c := newTestCoordinator(&stubGenerator{}, nil, repo, 1)

	result, err := c.RunBatch(context.Background(), []puzzle.Instruction{{Text: "a"}}, 1)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != result.ID {
		t.Errorf("batch not persisted: %v", repo.saved)
	}
	if result.ID.String() == "" {
		t.Error("batch ID is empty")
	}
}
