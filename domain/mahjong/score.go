package mahjong

// YakuResult holds the name and han value of one identified yaku.
type YakuResult struct {
	Name string `json:"name"`
	Han  int    `json:"han"`
}

// ScoreResult is what the scoring engine produces for a structurally valid
// winning hand. Points is the main payment (the number puzzle answers use).
type ScoreResult struct {
	Points int      `json:"score"`
	Han    int      `json:"han"`
	Fu     int      `json:"fu"`
	Yaku   []string `json:"yaku"`
}

// HasYaku reports whether the result carries at least one qualifying yaku.
func (r *ScoreResult) HasYaku() bool {
	return r != nil && len(r.Yaku) > 0
}
