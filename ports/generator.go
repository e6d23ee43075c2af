package ports

import (
	"context"

	"yakugen/domain/puzzle"
)

// QuestionGenerator produces natural-language puzzle text for one
// instruction. Implementations may use any prompt or template (including a
// previously tuned one); the core treats the call as opaque.
type QuestionGenerator interface {
	Generate(ctx context.Context, instruction puzzle.Instruction) (string, error)
}
