package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"yakugen/adapters/scoring"
	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
	"yakugen/internal/rng"
)

// These tests run the pipeline against the real scoring engine, with only
// the LLM stages stubbed out.

func TestEndToEndValidPuzzle(t *testing.T) {
	ext := &stubExtractor{hand: validHand()}
	pipeline := NewCandidatePipeline(&stubGenerator{}, ext, NewClassifier(scoring.NewEngine()))
	sampler := NewSampler(pipeline, rng.NewSeededSource(9), SamplerConfig{})

	result, err := sampler.Sample(context.Background(), ParseInstruction("create a hand worth 2000 points"), 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.SuccessCount)
	assert.NotNil(t, result.Selected)

	score := result.Selected.Score
	assert.Equal(t, 2000, score.Points)
	assert.Equal(t, 2, score.Han)
	assert.Equal(t, 30, score.Fu)
	assert.Equal(t, []string{"Pinfu", "Tanyao"}, score.Yaku)
}

func TestEndToEndScoreMismatch(t *testing.T) {
	// The hand scores 2000, the instruction demands 8000.
	ext := &stubExtractor{hand: validHand()}
	pipeline := NewCandidatePipeline(&stubGenerator{}, ext, NewClassifier(scoring.NewEngine()))
	sampler := NewSampler(pipeline, rng.NewSeededSource(9), SamplerConfig{})

	result, err := sampler.Sample(context.Background(), ParseInstruction("create a hand worth 8000 points"), 2)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Nil(t, result.Selected)
	assert.Equal(t, 2, result.CategoryCounts[puzzle.ScoreMismatchError])

	for _, c := range result.Candidates {
		assert.NotNil(t, c.Score, "computed score should be kept on mismatches")
		assert.Equal(t, 2000, c.Score.Points)
	}
}

func TestEndToEndNoYakuHand(t *testing.T) {
	// Open chii hand with no yaku at all.
	noYaku := &mahjong.Hand{
		Tiles:      []string{"2m", "3m", "4m", "5m", "6m", "7m", "2p", "3p", "4p", "5s", "6s", "7s", "9p", "9p"},
		Melds:      []mahjong.Meld{{Tiles: []string{"2m", "3m", "4m"}, IsOpen: true}},
		WinTile:    "7s",
		PlayerWind: "south",
	}
	ext := &stubExtractor{hand: noYaku}
	pipeline := NewCandidatePipeline(&stubGenerator{}, ext, NewClassifier(scoring.NewEngine()))

	outcome := pipeline.RunCandidate(context.Background(), puzzle.Instruction{Text: "x"}, 1)
	assert.Equal(t, puzzle.NoYakuError, outcome.ErrorCategory)
	assert.Nil(t, outcome.Score)
}

func TestEndToEndMalformedHand(t *testing.T) {
	bad := &mahjong.Hand{
		Tiles:   []string{"2m", "3m", "8z", "4m", "5m", "6m", "5p", "6p", "7p", "2s", "3s", "4s", "8s", "8s"},
		WinTile: "4s",
	}
	ext := &stubExtractor{hand: bad}
	pipeline := NewCandidatePipeline(&stubGenerator{}, ext, NewClassifier(scoring.NewEngine()))

	outcome := pipeline.RunCandidate(context.Background(), puzzle.Instruction{Text: "x"}, 1)
	assert.Equal(t, puzzle.FormatError, outcome.ErrorCategory)
	assert.Contains(t, outcome.ErrorDetail, "tiles is not valid")
}
