package puzzle

import (
	"yakugen/domain/core"
	"yakugen/domain/mahjong"
)

// Instruction is a natural-language directive describing the desired
// puzzle ("score must equal 2000", "use tanyao and sanshoku", ...).
// ExpectedScore is the parsed target score; 0 means no score check.
type Instruction struct {
	Text          string `json:"instruction"`
	ExpectedScore int    `json:"expected_score,omitempty"`
}

// Status of one candidate attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// ErrorCategory classifies why a candidate failed. Categories are data, not
// control flow: every failure is recorded, none is thrown past the pipeline.
type ErrorCategory string

const (
	// GenerationError: the question-generation call failed or returned
	// unusable output (includes per-instruction timeouts).
	GenerationError ErrorCategory = "generation_error"
	// ExtractionError: question text could not be converted into a
	// structurally complete hand.
	ExtractionError ErrorCategory = "extraction_error"
	// FormatError: the hand failed structural invariants before any
	// scoring attempt.
	FormatError ErrorCategory = "format_error"
	// NoYakuError: structurally valid but the engine found no qualifying
	// combination.
	NoYakuError ErrorCategory = "no_yaku_error"
	// ScoreMismatchError: scores validly but the value differs from the
	// instruction's expected score.
	ScoreMismatchError ErrorCategory = "score_mismatch_error"
)

// ComplianceResult is the LLM-as-a-judge verdict on whether a validated
// candidate actually follows its instruction.
type ComplianceResult struct {
	Compliant bool   `json:"compliant"`
	Reason    string `json:"reason"`
}

// CandidateOutcome records one generate-extract-validate attempt. Created
// once per attempt, never mutated afterwards; owned by the sampler that
// spawned it.
type CandidateOutcome struct {
	ID       core.CandidateID     `json:"id"`
	Index    int                  `json:"candidate_number"`
	Question string               `json:"question,omitempty"`
	Hand     *mahjong.Hand        `json:"hand,omitempty"`
	Score    *mahjong.ScoreResult `json:"score,omitempty"`

	Status        Status            `json:"status"`
	ErrorCategory ErrorCategory     `json:"error_category,omitempty"`
	ErrorDetail   string            `json:"error_detail,omitempty"`
	Compliance    *ComplianceResult `json:"compliance,omitempty"`
}

// Succeeded reports whether the candidate validated cleanly.
func (c *CandidateOutcome) Succeeded() bool { return c.Status == StatusSuccess }

// SamplingResult aggregates one instruction's candidates. Selected is
// non-nil exactly when SuccessCount > 0, and always points at a success.
type SamplingResult struct {
	Instruction    Instruction           `json:"instruction"`
	Candidates     []CandidateOutcome    `json:"candidates"`
	Selected       *CandidateOutcome     `json:"selected,omitempty"`
	SuccessCount   int                   `json:"success_count"`
	FailureCount   int                   `json:"failure_count"`
	CategoryCounts map[ErrorCategory]int `json:"category_counts,omitempty"`
}

// HadSuccess reports whether at least one candidate validated.
func (s *SamplingResult) HadSuccess() bool { return s.SuccessCount > 0 }

// SelectedIndex returns the 1-based candidate number of the winner, or 0
// when no candidate succeeded.
func (s *SamplingResult) SelectedIndex() int {
	if s.Selected == nil {
		return 0
	}
	return s.Selected.Index
}

// BatchResult aggregates sampling over a list of instructions.
// TotalCandidates is the sum of candidate list lengths; TotalSuccesses the
// sum of per-instruction success counts.
type BatchResult struct {
	ID             core.BatchID     `json:"batch_id"`
	PerInstruction []SamplingResult `json:"results"`

	TotalInstructions int `json:"total_instructions"`
	TotalCandidates   int `json:"total_candidates"`
	TotalSuccesses    int `json:"total_successes"`
	TotalFailures     int `json:"total_failures"`

	// SuccessRate is candidate-level: TotalSuccesses / TotalCandidates.
	SuccessRate float64 `json:"success_rate"`
	// InstructionSuccessRate counts instructions with at least one success.
	InstructionSuccessRate float64 `json:"instruction_success_rate"`
	// ComplianceRate covers judged selected candidates only; -1 when the
	// judge never ran.
	ComplianceRate float64 `json:"compliance_rate"`

	// Summary statistics over per-instruction success counts.
	MeanSuccessesPerInstruction float64 `json:"mean_successes_per_instruction"`
	MinSuccesses                int     `json:"min_successes"`
	MaxSuccesses                int     `json:"max_successes"`
}
