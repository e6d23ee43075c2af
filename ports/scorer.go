package ports

import (
	"context"

	"yakugen/domain/mahjong"
)

// ScoreEngine computes the value of a structurally valid winning hand.
// Deterministic for a given hand. A hand with no qualifying yaku fails
// with core.ErrNoYaku (or core.ErrNoWinningHand when it has no winning
// shape at all); anything else is a malformed-hand error.
type ScoreEngine interface {
	Compute(ctx context.Context, hand *mahjong.Hand) (*mahjong.ScoreResult, error)
}
