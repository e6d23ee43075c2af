package puzzle

import "yakugen/domain/mahjong"

// Persisted record shapes. These are the JSON contracts written to result
// files and the Postgres store; keep field names stable.

// ValidationRecord is the flattened validation block of a generated item.
type ValidationRecord struct {
	IsValid       bool     `json:"is_valid"`
	Score         *int     `json:"score"`
	Han           *int     `json:"han"`
	Fu            *int     `json:"fu"`
	Yaku          []string `json:"yaku"`
	ErrorCategory *string  `json:"error_category"`
}

// GeneratedItem is the persisted shape for one generated puzzle.
type GeneratedItem struct {
	Question      string           `json:"question"`
	Hand          *mahjong.Hand    `json:"hand"`
	ExpectedScore *int             `json:"expected_score"`
	Validation    ValidationRecord `json:"validation"`
}

// SamplingSummary is the per-instruction summary record.
type SamplingSummary struct {
	Instruction    string `json:"instruction"`
	CandidateCount int    `json:"candidate_count"`
	SuccessCount   int    `json:"success_count"`
	FailureCount   int    `json:"failure_count"`
	SelectedIndex  *int   `json:"selected_index"`
}

// GlobalSummary is the batch-level summary record.
type GlobalSummary struct {
	BatchID                string  `json:"batch_id,omitempty"`
	TotalInstructions      int     `json:"total_instructions"`
	TotalCandidates        int     `json:"total_candidates"`
	TotalSuccesses         int     `json:"total_successes"`
	SuccessRate            float64 `json:"success_rate"`
	InstructionSuccessRate float64 `json:"instruction_success_rate"`
}

// Record flattens a candidate into its persisted item shape.
func (c *CandidateOutcome) Record(expectedScore int) GeneratedItem {
	item := GeneratedItem{
		Question: c.Question,
		Hand:     c.Hand,
		Validation: ValidationRecord{
			IsValid: c.Succeeded(),
			Yaku:    []string{},
		},
	}
	if expectedScore > 0 {
		item.ExpectedScore = &expectedScore
	}
	if c.Score != nil {
		score, han, fu := c.Score.Points, c.Score.Han, c.Score.Fu
		item.Validation.Score = &score
		item.Validation.Han = &han
		item.Validation.Fu = &fu
		if len(c.Score.Yaku) > 0 {
			item.Validation.Yaku = c.Score.Yaku
		}
	}
	if c.ErrorCategory != "" {
		category := string(c.ErrorCategory)
		item.Validation.ErrorCategory = &category
	}
	return item
}

// Summarize flattens a SamplingResult into its persisted summary record.
func (s *SamplingResult) Summarize() SamplingSummary {
	summary := SamplingSummary{
		Instruction:    s.Instruction.Text,
		CandidateCount: len(s.Candidates),
		SuccessCount:   s.SuccessCount,
		FailureCount:   s.FailureCount,
	}
	if s.Selected != nil {
		idx := s.Selected.Index
		summary.SelectedIndex = &idx
	}
	return summary
}

// Summarize flattens a BatchResult into its persisted global summary.
func (b *BatchResult) Summarize() GlobalSummary {
	return GlobalSummary{
		BatchID:                b.ID.String(),
		TotalInstructions:      b.TotalInstructions,
		TotalCandidates:        b.TotalCandidates,
		TotalSuccesses:         b.TotalSuccesses,
		SuccessRate:            b.SuccessRate,
		InstructionSuccessRate: b.InstructionSuccessRate,
	}
}
