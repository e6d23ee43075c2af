package ports

import (
	"context"

	"yakugen/domain/mahjong"
)

// HandExtractor turns free-form puzzle text into a structured hand.
// Implementations must default-fill optional fields; a returned hand is
// never partially populated.
type HandExtractor interface {
	Extract(ctx context.Context, question string) (*mahjong.Hand, error)
}
