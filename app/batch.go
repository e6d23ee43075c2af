package app

import (
	"context"
	"log"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"yakugen/domain/core"
	"yakugen/domain/puzzle"
	apperrors "yakugen/internal/errors"
	"yakugen/ports"
)

// BatchConfig tunes a batch run.
type BatchConfig struct {
	// MaxParallel caps instructions processed simultaneously. Zero means
	// sequential.
	MaxParallel int64
}

// BatchCoordinator runs the sampler over an instruction list. One
// instruction failing to produce a valid puzzle never stops the rest; the
// batch always covers every instruction. Judge and repository are both
// optional collaborators.
type BatchCoordinator struct {
	sampler *Sampler
	judge   ports.ComplianceJudge
	repo    ports.PuzzleRepository
	config  BatchConfig
}

// NewBatchCoordinator wires a coordinator. judge and repo may be nil.
func NewBatchCoordinator(sampler *Sampler, judge ports.ComplianceJudge, repo ports.PuzzleRepository, config BatchConfig) *BatchCoordinator {
	return &BatchCoordinator{sampler: sampler, judge: judge, repo: repo, config: config}
}

// RunBatch samples candidateCount candidates per instruction and returns
// the aggregated batch result. The per-instruction result order matches
// the input order regardless of scheduling.
func (b *BatchCoordinator) RunBatch(ctx context.Context, instructions []puzzle.Instruction, candidateCount int) (*puzzle.BatchResult, error) {
	if len(instructions) == 0 {
		return nil, apperrors.InvalidInput("instruction list is empty")
	}
	if candidateCount <= 0 {
		return nil, apperrors.InvalidInputf("candidate count must be positive, got %d", candidateCount)
	}

	maxParallel := b.config.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 1
	}
	sem := semaphore.NewWeighted(maxParallel)

	log.Printf("[BatchCoordinator] starting batch: %d instructions, %d candidates each",
		len(instructions), candidateCount)

	results := make([]puzzle.SamplingResult, len(instructions))
	var wg sync.WaitGroup
	for i, instruction := range instructions {
		wg.Add(1)
		go func(slot int, instruction puzzle.Instruction) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[slot] = abortedSampling(instruction, candidateCount, err)
				return
			}
			defer sem.Release(1)

			sampled, err := b.sampler.Sample(ctx, instruction, candidateCount)
			if err != nil {
				// Argument errors are caught before the loop; anything
				// else here still must not sink the batch.
				results[slot] = abortedSampling(instruction, candidateCount, err)
				return
			}
			b.judgeSelected(ctx, sampled)
			results[slot] = *sampled
		}(i, instruction)
	}
	wg.Wait()

	result := b.aggregate(results)

	if b.repo != nil {
		if err := b.repo.SaveBatch(ctx, result); err != nil {
			log.Printf("[BatchCoordinator] WARNING: failed to persist batch %s: %v",
				result.ID.String(), err)
		}
	}
	return result, nil
}

// judgeSelected runs the compliance judge on the winning candidate, when
// both exist. Judge failures are recorded as non-verdicts, not errors.
func (b *BatchCoordinator) judgeSelected(ctx context.Context, sampled *puzzle.SamplingResult) {
	if b.judge == nil || sampled.Selected == nil || sampled.Selected.Score == nil {
		return
	}
	verdict, err := b.judge.Judge(ctx, sampled.Instruction, sampled.Selected.Score)
	if err != nil {
		log.Printf("[BatchCoordinator] compliance judge failed: %v", err)
		return
	}
	sampled.Selected.Compliance = &verdict
}

func (b *BatchCoordinator) aggregate(results []puzzle.SamplingResult) *puzzle.BatchResult {
	batch := &puzzle.BatchResult{
		ID:             core.BatchID(core.NewID()),
		PerInstruction: results,

		TotalInstructions: len(results),
		ComplianceRate:    -1,
		MinSuccesses:      -1,
	}

	successCounts := make([]float64, 0, len(results))
	instructionHits := 0
	judged, compliant := 0, 0
	for i := range results {
		r := &results[i]
		batch.TotalCandidates += len(r.Candidates)
		batch.TotalSuccesses += r.SuccessCount
		batch.TotalFailures += r.FailureCount
		successCounts = append(successCounts, float64(r.SuccessCount))
		if r.HadSuccess() {
			instructionHits++
		}
		if r.Selected != nil && r.Selected.Compliance != nil {
			judged++
			if r.Selected.Compliance.Compliant {
				compliant++
			}
		}
	}

	if batch.TotalCandidates > 0 {
		batch.SuccessRate = float64(batch.TotalSuccesses) / float64(batch.TotalCandidates)
	}
	batch.InstructionSuccessRate = float64(instructionHits) / float64(len(results))
	if judged > 0 {
		batch.ComplianceRate = float64(compliant) / float64(judged)
	}

	if mean, err := stats.Mean(successCounts); err == nil {
		batch.MeanSuccessesPerInstruction = mean
	}
	if min, err := stats.Min(successCounts); err == nil {
		batch.MinSuccesses = int(min)
	}
	if max, err := stats.Max(successCounts); err == nil {
		batch.MaxSuccesses = int(max)
	}

	log.Printf("[BatchCoordinator] batch %s done: %d/%d candidates valid (%.1f%%), %d/%d instructions produced a puzzle",
		batch.ID.String(), batch.TotalSuccesses, batch.TotalCandidates,
		batch.SuccessRate*100, instructionHits, len(results))
	return batch
}

// abortedSampling records an instruction whose sampler never ran to
// completion (cancelled context). Slots are filled so candidate totals
// stay consistent.
func abortedSampling(instruction puzzle.Instruction, candidateCount int, err error) puzzle.SamplingResult {
	candidates := make([]puzzle.CandidateOutcome, candidateCount)
	for i := range candidates {
		candidates[i] = timedOutCandidate(i+1, err)
	}
	return puzzle.SamplingResult{
		Instruction:    instruction,
		Candidates:     candidates,
		FailureCount:   candidateCount,
		CategoryCounts: map[puzzle.ErrorCategory]int{puzzle.GenerationError: candidateCount},
	}
}
