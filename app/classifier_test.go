package app

import (
	"context"
	"reflect"
	"testing"

	"yakugen/domain/core"
	"yakugen/domain/mahjong"
	"yakugen/domain/puzzle"
)

func TestClassifyStructuralFailureSkipsEngine(t *testing.T) {
	engine := &stubEngine{score: validScore()}
	classifier := NewClassifier(engine)

	short := &mahjong.Hand{Tiles: []string{"2m", "3m", "4m"}, WinTile: "4m"}
	got := classifier.Classify(context.Background(), short, 0)

	if got.Valid {
		t.Fatal("short hand classified as valid")
	}
	if got.Category != puzzle.FormatError {
		t.Errorf("category = %s, want %s", got.Category, puzzle.FormatError)
	}
	if engine.callCount() != 0 {
		t.Errorf("engine called %d times for a structural failure, want 0", engine.callCount())
	}
}

func TestClassifyNilHand(t *testing.T) {
	engine := &stubEngine{score: validScore()}
	got := NewClassifier(engine).Classify(context.Background(), nil, 0)
	if got.Valid || got.Category != puzzle.FormatError {
		t.Errorf("nil hand: got %+v, want format error", got)
	}
	if engine.callCount() != 0 {
		t.Error("engine called for nil hand")
	}
}

func TestClassifyValid(t *testing.T) {
	engine := &stubEngine{score: validScore()}
	got := NewClassifier(engine).Classify(context.Background(), validHand(), 0)
	if !got.Valid {
		t.Fatalf("classification = %+v, want valid", got)
	}
	if got.Score == nil || got.Score.Points != 2000 {
		t.Errorf("score not carried through: %+v", got.Score)
	}
}

func TestClassifyExpectedScoreMatch(t *testing.T) {
	engine := &stubEngine{score: validScore()}
	got := NewClassifier(engine).Classify(context.Background(), validHand(), 2000)
	if !got.Valid {
		t.Errorf("matching expected score should be valid: %+v", got)
	}
}

func TestClassifyScoreMismatchKeepsComputedScore(t *testing.T) {
	engine := &stubEngine{score: validScore()}
	got := NewClassifier(engine).Classify(context.Background(), validHand(), 5200)

	if got.Valid {
		t.Fatal("mismatched score classified as valid")
	}
	if got.Category != puzzle.ScoreMismatchError {
		t.Errorf("category = %s, want %s", got.Category, puzzle.ScoreMismatchError)
	}
	if got.Detail != "score mismatch: expected 5200, got 2000" {
		t.Errorf("detail = %q", got.Detail)
	}
	if got.Score == nil || got.Score.Points != 2000 {
		t.Errorf("computed score dropped: %+v", got.Score)
	}
}

func TestClassifyNoYaku(t *testing.T) {
	engine := &stubEngine{err: core.ErrNoYaku}
	got := NewClassifier(engine).Classify(context.Background(), validHand(), 0)
	if got.Category != puzzle.NoYakuError {
		t.Errorf("category = %s, want %s", got.Category, puzzle.NoYakuError)
	}
}

func TestClassifyNoWinningShapeCountsAsNoYaku(t *testing.T) {
	engine := &stubEngine{err: core.ErrNoWinningHand}
	got := NewClassifier(engine).Classify(context.Background(), validHand(), 0)
	if got.Category != puzzle.NoYakuError {
		t.Errorf("category = %s, want %s", got.Category, puzzle.NoYakuError)
	}
}

func TestParsedScoreTargetDrivesMismatch(t *testing.T) {
	engine := &stubEngine{score: &mahjong.ScoreResult{Points: 1000, Han: 1, Fu: 40, Yaku: []string{"Riichi"}}}
	instruction := ParseInstruction("score must equal 2000")
	if instruction.ExpectedScore != 2000 {
		t.Fatalf("expected score = %d, want 2000", instruction.ExpectedScore)
	}

	got := NewClassifier(engine).Classify(context.Background(), validHand(), instruction.ExpectedScore)
	if got.Category != puzzle.ScoreMismatchError {
		t.Fatalf("category = %s, want %s", got.Category, puzzle.ScoreMismatchError)
	}
	if got.Detail != "score mismatch: expected 2000, got 1000" {
		t.Errorf("detail = %q", got.Detail)
	}
}

func TestClassifyIsRepeatable(t *testing.T) {
	engine := &stubEngine{score: validScore()}
	classifier := NewClassifier(engine)
	hand := validHand()

	first := classifier.Classify(context.Background(), hand, 5200)
	second := classifier.Classify(context.Background(), hand, 5200)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated classification differs:\n%+v\n%+v", first, second)
	}
}

func TestParseInstructionScoreTarget(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"create a tanyao hand worth 5200 points", 5200},
		{"タンヤオと三色同順で5200点の問題", 5200},
		{"make a problem with three concealed triplets", 0},
		{"score of 300 points minimum", 300},
		{"score must equal 2000", 2000},
		{"score of 12000", 12000},
		{"a closed hand worth 3900", 3900},
		{"the total score Equals 7700", 7700},
	}
	for _, tc := range cases {
		got := ParseInstruction(tc.text)
		if got.ExpectedScore != tc.want {
			t.Errorf("%q: expected score %d, got %d", tc.text, tc.want, got.ExpectedScore)
		}
	}
}
