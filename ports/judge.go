package ports

import (
	"context"

	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
)

// ComplianceJudge decides whether a validated candidate actually satisfies
// its instruction (conditions the score check alone cannot verify, such as
// required yaku). Batch-mode only; classification never depends on it.
type ComplianceJudge interface {
	Judge(ctx context.Context, instruction puzzle.Instruction, score *mahjong.ScoreResult) (puzzle.ComplianceResult, error)
}
