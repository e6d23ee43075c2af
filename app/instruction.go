package app

import (
	"regexp"
	"strconv"
	"strings"

	"yakugen/domain/puzzle"
)

// scorePatterns match an explicit score target inside an instruction,
// either a number with a unit suffix ("worth 5200 points", "5200点") or a
// number preceded by score-context wording ("score must equal 2000",
// "score of 12000", "worth 3900").
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{3,6})\s*(?:点|points?\b)`),
	regexp.MustCompile(`(?i)(?:equals?|score of|worth|scoring)\s+(\d{3,6})\b`),
}

// ParseInstruction builds an Instruction from raw text, extracting an
// expected score when the text names one. Instructions without a score
// target validate on structure and yaku alone.
func ParseInstruction(text string) puzzle.Instruction {
	instruction := puzzle.Instruction{Text: strings.TrimSpace(text)}
	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(instruction.Text)
		if m == nil {
			continue
		}
		if score, err := strconv.Atoi(m[1]); err == nil {
			instruction.ExpectedScore = score
			break
		}
	}
	return instruction
}

// ParseInstructions maps ParseInstruction over a raw list.
func ParseInstructions(texts []string) []puzzle.Instruction {
	out := make([]puzzle.Instruction, 0, len(texts))
	for _, t := range texts {
		out = append(out, ParseInstruction(t))
	}
	return out
}
