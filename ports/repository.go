package ports

import (
	"context"

	"yakugen/domain/puzzle"
)

// PuzzleRepository persists batch results. Optional: callers without a
// database configured simply skip it.
type PuzzleRepository interface {
	SaveBatch(ctx context.Context, result *puzzle.BatchResult) error
	GetBatch(ctx context.Context, batchID string) (*puzzle.BatchResult, error)
	ListBatches(ctx context.Context, limit int) ([]puzzle.GlobalSummary, error)
}
