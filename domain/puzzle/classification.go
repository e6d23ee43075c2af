package puzzle

import (
	"fmt"

	"yakugen/domain/mahjong"
)

// Classification is the tagged outcome of validating one hand against an
// optional expected score. It is a value, never a thrown error: callers
// aggregate failures without special-casing error types.
type Classification struct {
	Valid    bool                 `json:"is_valid"`
	Category ErrorCategory        `json:"error_category,omitempty"`
	Detail   string               `json:"error_detail,omitempty"`
	Score    *mahjong.ScoreResult `json:"score,omitempty"`
}

// ClassifyValid builds the success classification carrying the engine result.
func ClassifyValid(score *mahjong.ScoreResult) Classification {
	return Classification{Valid: true, Score: score}
}

// ClassifyFormatError builds a structural-failure classification.
func ClassifyFormatError(reason string) Classification {
	return Classification{Valid: false, Category: FormatError, Detail: reason}
}

// ClassifyNoYaku builds the no-qualifying-combination classification.
func ClassifyNoYaku(reason string) Classification {
	return Classification{Valid: false, Category: NoYakuError, Detail: reason}
}

// ClassifyScoreMismatch builds the mismatch classification. The computed
// score is kept for diagnostics and the detail names both values.
func ClassifyScoreMismatch(expected int, score *mahjong.ScoreResult) Classification {
	return Classification{
		Valid:    false,
		Category: ScoreMismatchError,
		Detail:   fmt.Sprintf("score mismatch: expected %d, got %d", expected, score.Points),
		Score:    score,
	}
}
