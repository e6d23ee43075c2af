package app

import (
	"context"
	"log"

	"yakugen/domain/core"
	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
	"yakugen/ports"
)

// Classifier validates extracted hands against an optional expected score.
// It is a total function over its inputs: every hand maps to exactly one
// classification, and failures come back as values, not errors.
type Classifier struct {
	engine ports.ScoreEngine
}

// NewClassifier creates a classifier over the given scoring engine.
func NewClassifier(engine ports.ScoreEngine) *Classifier {
	return &Classifier{engine: engine}
}

// Classify checks the hand structurally, then scores it. Structural
// failures never reach the engine. An expectedScore of 0 disables the
// score comparison.
func (c *Classifier) Classify(ctx context.Context, hand *mahjong.Hand, expectedScore int) puzzle.Classification {
	if hand == nil {
		return puzzle.ClassifyFormatError("hand is missing")
	}
	if err := hand.Validate(); err != nil {
		return puzzle.ClassifyFormatError(err.Error())
	}

	score, err := c.engine.Compute(ctx, hand)
	if err != nil {
		if core.IsNoYaku(err) {
			return puzzle.ClassifyNoYaku(err.Error())
		}
		// Engine-side structural rejections and anything unexpected are
		// format failures: the hand as extracted cannot be scored.
		log.Printf("[Classifier] engine rejected hand: %v", err)
		return puzzle.ClassifyFormatError(err.Error())
	}

	if expectedScore > 0 && score.Points != expectedScore {
		return puzzle.ClassifyScoreMismatch(expectedScore, score)
	}

	return puzzle.ClassifyValid(score)
}
