package app

import (
	"context"
	"log"

	"yakugen/domain/core"
	"yakugen/domain/puzzle"
	"yakugen/ports"
)

// CandidatePipeline runs one generate-extract-classify attempt. Every
// stage runs at most once per candidate and the first failing stage
// decides the outcome; later stages are never invoked after a failure.
type CandidatePipeline struct {
	generator  ports.QuestionGenerator
	extractor  ports.HandExtractor
	classifier *Classifier
}

// NewCandidatePipeline wires the three stages.
func NewCandidatePipeline(generator ports.QuestionGenerator, extractor ports.HandExtractor, classifier *Classifier) *CandidatePipeline {
	return &CandidatePipeline{
		generator:  generator,
		extractor:  extractor,
		classifier: classifier,
	}
}

// RunCandidate produces the outcome for candidate number index (1-based)
// of the given instruction. It never returns an error: every failure mode
// is captured in the outcome's category and detail.
func (p *CandidatePipeline) RunCandidate(ctx context.Context, instruction puzzle.Instruction, index int) puzzle.CandidateOutcome {
	outcome := puzzle.CandidateOutcome{
		ID:     core.CandidateID(core.NewID()),
		Index:  index,
		Status: puzzle.StatusFailure,
	}

	question, err := p.generator.Generate(ctx, instruction)
	if err != nil {
		outcome.ErrorCategory = puzzle.GenerationError
		outcome.ErrorDetail = err.Error()
		log.Printf("[CandidatePipeline] candidate %d: generation failed: %v", index, err)
		return outcome
	}
	outcome.Question = question

	hand, err := p.extractor.Extract(ctx, question)
	if err != nil {
		outcome.ErrorCategory = puzzle.ExtractionError
		outcome.ErrorDetail = err.Error()
		log.Printf("[CandidatePipeline] candidate %d: extraction failed: %v", index, err)
		return outcome
	}
	outcome.Hand = hand

	classification := p.classifier.Classify(ctx, hand, instruction.ExpectedScore)
	outcome.Score = classification.Score
	if classification.Valid {
		outcome.Status = puzzle.StatusSuccess
		return outcome
	}

	outcome.ErrorCategory = classification.Category
	outcome.ErrorDetail = classification.Detail
	return outcome
}
