package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Hand validation errors
	ErrHandInvalid   = errors.New("hand failed structural validation")
	ErrEmptyTiles    = fmt.Errorf("%w: tiles is required", ErrHandInvalid)
	ErrBadTileCode   = fmt.Errorf("%w: tiles is not valid", ErrHandInvalid)
	ErrBadDora       = fmt.Errorf("%w: dora_indicators is not valid", ErrHandInvalid)
	ErrBadMeld       = fmt.Errorf("%w: melds is not valid", ErrHandInvalid)
	ErrShortHand     = fmt.Errorf("%w: tiles is less than 14", ErrHandInvalid)
	ErrWinTileAbsent = fmt.Errorf("%w: win_tile is not in tiles", ErrHandInvalid)

	// Scoring errors
	ErrNoYaku        = errors.New("no valid yaku found")
	ErrNoWinningHand = errors.New("no valid hand found")

	// Collaborator errors
	ErrGenerationFailed = errors.New("question generation failed")
	ErrExtractionFailed = errors.New("hand extraction failed")
)

// NewHandError wraps a structural validation failure with a field reason.
func NewHandError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrHandInvalid, field, reason)
}

// IsHandError reports whether err is a structural hand validation failure.
func IsHandError(err error) bool {
	return errors.Is(err, ErrHandInvalid)
}

// IsNoYaku reports whether err means the hand scores but carries no yaku.
func IsNoYaku(err error) bool {
	return errors.Is(err, ErrNoYaku) || errors.Is(err, ErrNoWinningHand)
}
