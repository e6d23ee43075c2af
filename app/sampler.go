package app

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"yakugen/domain/core"
	"yakugen/domain/puzzle"
	apperrors "yakugen/internal/errors"
	"yakugen/ports"
)

// SamplerConfig tunes one repeated-sampling run.
type SamplerConfig struct {
	// MaxConcurrent caps simultaneous candidate pipelines. Zero means one
	// slot per candidate.
	MaxConcurrent int64
	// Timeout bounds the whole instruction. Candidates still pending when
	// it fires are recorded as generation failures; the run itself always
	// completes with a full result. Zero disables the bound.
	Timeout time.Duration
}

// Sampler runs N candidate pipelines for one instruction and picks a
// uniformly random winner among the successes. Every spawned candidate is
// awaited and recorded; an early success never cancels its siblings.
type Sampler struct {
	pipeline *CandidatePipeline
	rng      ports.RNG
	config   SamplerConfig
	seq      atomic.Int64
}

// NewSampler creates a sampler over the pipeline with the given RNG.
func NewSampler(pipeline *CandidatePipeline, rng ports.RNG, config SamplerConfig) *Sampler {
	return &Sampler{pipeline: pipeline, rng: rng, config: config}
}

// Sample generates candidateCount candidates for the instruction and
// returns the aggregated result. candidateCount must be positive; that is
// the one argument error, everything downstream is captured per candidate.
func (s *Sampler) Sample(ctx context.Context, instruction puzzle.Instruction, candidateCount int) (*puzzle.SamplingResult, error) {
	if candidateCount <= 0 {
		return nil, apperrors.InvalidInputf("candidate count must be positive, got %d", candidateCount)
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	maxConcurrent := s.config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = int64(candidateCount)
	}
	sem := semaphore.NewWeighted(maxConcurrent)

	log.Printf("[Sampler] sampling %d candidates for instruction %q",
		candidateCount, instruction.Text)

	candidates := make([]puzzle.CandidateOutcome, candidateCount)
	var wg sync.WaitGroup
	for i := 0; i < candidateCount; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				candidates[slot] = timedOutCandidate(slot+1, err)
				return
			}
			defer sem.Release(1)
			candidates[slot] = s.pipeline.RunCandidate(ctx, instruction, slot+1)
		}(i)
	}
	wg.Wait()

	result := &puzzle.SamplingResult{
		Instruction:    instruction,
		Candidates:     candidates,
		CategoryCounts: map[puzzle.ErrorCategory]int{},
	}
	var successIdx []int
	for i := range candidates {
		if candidates[i].Succeeded() {
			result.SuccessCount++
			successIdx = append(successIdx, i)
		} else {
			result.FailureCount++
			result.CategoryCounts[candidates[i].ErrorCategory]++
		}
	}

	if len(successIdx) > 0 {
		rnd := s.rng.Stream("winner-selection", s.seq.Add(1))
		winner := successIdx[rnd.Intn(len(successIdx))]
		result.Selected = &result.Candidates[winner]
	}

	log.Printf("[Sampler] instruction done: %d/%d succeeded, selected candidate #%d",
		result.SuccessCount, candidateCount, result.SelectedIndex())
	return result, nil
}

// timedOutCandidate records a slot that never started its pipeline because
// the instruction deadline fired first.
func timedOutCandidate(index int, err error) puzzle.CandidateOutcome {
	return puzzle.CandidateOutcome{
		ID:            core.CandidateID(core.NewID()),
		Index:         index,
		Status:        puzzle.StatusFailure,
		ErrorCategory: puzzle.GenerationError,
		ErrorDetail:   "timeout: " + err.Error(),
	}
}
