package scoring

import (
	"context"
	"fmt"
	"log"

	"yakugen/domain/core"
	"yakugen/domain/mahjong"
	"yakugen/ports"
)

// Engine is the rule-based scoring implementation of ports.ScoreEngine.
// It enumerates every decomposition of the hand into sets and a pair,
// scores each against the yaku and fu tables, and returns the highest
// value interpretation.
type Engine struct{}

var _ ports.ScoreEngine = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{}
}

// candidate is one fully scored interpretation of the hand.
type candidate struct {
	han    int
	fu     int
	points int
	yaku   []mahjong.YakuResult
}

func (c candidate) betterThan(o candidate) bool {
	if c.points != o.points {
		return c.points > o.points
	}
	if c.han != o.han {
		return c.han > o.han
	}
	return c.fu > o.fu
}

// Compute scores a structurally valid winning hand. It returns
// core.ErrNoWinningHand when the tiles admit no winning decomposition and
// core.ErrNoYaku when every decomposition scores zero yaku.
func (e *Engine) Compute(ctx context.Context, h *mahjong.Hand) (*mahjong.ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	allCounts := h.Counts()
	winIdx, err := mahjong.ParseTile(h.WinTile)
	if err != nil {
		return nil, core.ErrWinTileAbsent
	}

	meldGroups, concealed, err := splitMelds(h, allCounts)
	if err != nil {
		return nil, err
	}

	seatWind, err := mahjong.ParseWind(h.PlayerWind)
	if err != nil {
		return nil, core.NewHandError("player_wind", "is not valid")
	}
	roundWind, err := mahjong.ParseWind(h.RoundWind)
	if err != nil {
		return nil, core.NewHandError("round_wind", "is not valid")
	}

	base := handState{
		hand:      h,
		counts:    allCounts,
		winIdx:    winIdx,
		closed:    h.IsClosed(),
		tsumo:     h.IsTsumo,
		seatWind:  seatWind,
		roundWind: roundWind,
	}
	dealer := seatWind == mahjong.East

	var best *candidate
	consider := func(c candidate) {
		if best == nil || c.betterThan(*best) {
			best = &c
		}
	}

	// Kokushi musou stands outside set decomposition entirely.
	if len(h.Melds) == 0 && isKokushi(allCounts) {
		c := scoreYakuman([]mahjong.YakuResult{{Name: "Kokushi Musou", Han: 13}}, dealer, h)
		consider(c)
	}

	// Chiitoitsu: seven pairs scored at a fixed 25 fu.
	if len(h.Melds) == 0 && isChiitoitsu(allCounts) {
		if c, ok := e.scoreChiitoitsu(base, dealer); ok {
			consider(c)
		}
	}

	sawDecomposition := best != nil
	for _, dec := range decomposeConcealed(concealed, 4-len(meldGroups)) {
		groups := append(append([]group{}, meldGroups...), dec...)
		for wg := range groups {
			if groups[wg].meld || !groups[wg].contains(winIdx) {
				continue
			}
			sawDecomposition = true
			s := base
			s.groups = groups
			s.winGroup = wg
			if c, ok := e.scoreDecomposition(&s, dealer); ok {
				consider(c)
			}
		}
	}

	if !sawDecomposition {
		return nil, core.ErrNoWinningHand
	}
	if best == nil {
		return nil, core.ErrNoYaku
	}

	names := make([]string, 0, len(best.yaku))
	for _, y := range best.yaku {
		names = append(names, y.Name)
	}
	result := &mahjong.ScoreResult{
		Points: best.points,
		Han:    best.han,
		Fu:     best.fu,
		Yaku:   names,
	}
	log.Printf("[ScoringEngine] scored hand: %d points, %d han %d fu, yaku=%v",
		result.Points, result.Han, result.Fu, result.Yaku)
	return result, nil
}

// scoreDecomposition scores one (decomposition, winning group) pairing.
// Returns ok=false when it carries no yaku.
func (e *Engine) scoreDecomposition(s *handState, dealer bool) (candidate, bool) {
	if yakuman := identifyYakuman(s); len(yakuman) > 0 {
		return scoreYakuman(yakuman, dealer, s.hand), true
	}

	yaku := identifyYaku(s)
	if len(yaku) == 0 {
		return candidate{}, false
	}

	pinfu := false
	for _, y := range yaku {
		if y.Name == "Pinfu" {
			pinfu = true
		}
	}

	if n := countDora(s.counts, s.hand.DoraIndicators); n > 0 {
		yaku = append(yaku, doraResult(n))
	}

	han := 0
	for _, y := range yaku {
		han += y.Han
	}

	var fu int
	switch {
	case pinfu && s.tsumo:
		fu = 20
	case pinfu:
		fu = 30
	default:
		fu = calculateFu(s)
	}

	points := winnerPoints(basePoints(han, fu), dealer, s.tsumo,
		s.hand.TsumiNumber, s.hand.KyoutakuNumber)
	return candidate{han: han, fu: fu, points: points, yaku: yaku}, true
}

// scoreChiitoitsu builds the seven-pair group list and scores it with the
// regular yaku pass plus the fixed chiitoitsu value.
func (e *Engine) scoreChiitoitsu(base handState, dealer bool) (candidate, bool) {
	var groups []group
	for idx, n := range base.counts {
		if n == 2 {
			groups = append(groups, group{kind: kindPair, tile: idx})
		}
	}
	s := base
	s.groups = groups
	for i, g := range groups {
		if g.contains(s.winIdx) {
			s.winGroup = i
			break
		}
	}

	if yakuman := identifyYakuman(&s); len(yakuman) > 0 {
		return scoreYakuman(yakuman, dealer, s.hand), true
	}

	yaku := append(identifyYaku(&s), mahjong.YakuResult{Name: "Chiitoitsu", Han: 2})
	if n := countDora(s.counts, s.hand.DoraIndicators); n > 0 {
		yaku = append(yaku, doraResult(n))
	}

	han := 0
	for _, y := range yaku {
		han += y.Han
	}
	fu := 25
	points := winnerPoints(basePoints(han, fu), dealer, s.tsumo,
		s.hand.TsumiNumber, s.hand.KyoutakuNumber)
	return candidate{han: han, fu: fu, points: points, yaku: yaku}, true
}

// scoreYakuman totals a yakuman list. Dora never applies.
func scoreYakuman(yaku []mahjong.YakuResult, dealer bool, h *mahjong.Hand) candidate {
	han := 0
	for _, y := range yaku {
		han += y.Han
	}
	points := winnerPoints(basePoints(han, 0), dealer, h.IsTsumo,
		h.TsumiNumber, h.KyoutakuNumber)
	return candidate{han: han, fu: 0, points: points, yaku: yaku}
}

// splitMelds converts declared melds to groups and subtracts their tiles
// from the full multiset, leaving the concealed portion.
func splitMelds(h *mahjong.Hand, all mahjong.Counts) ([]group, mahjong.Counts, error) {
	concealed := all
	groups := make([]group, 0, len(h.Melds))
	for _, m := range h.Melds {
		t, err := m.Type()
		if err != nil {
			return nil, concealed, core.ErrBadMeld
		}
		open, err := m.Opened()
		if err != nil {
			return nil, concealed, core.ErrBadMeld
		}

		lowest := mahjong.TileKinds
		for _, code := range m.Tiles {
			idx, err := mahjong.ParseTile(code)
			if err != nil {
				return nil, concealed, core.ErrBadMeld
			}
			if concealed[idx] == 0 {
				return nil, concealed, core.ErrBadMeld
			}
			concealed[idx]--
			if idx < lowest {
				lowest = idx
			}
		}

		g := group{tile: lowest, open: open, meld: true}
		switch t {
		case mahjong.MeldKan:
			g.kind = kindQuad
		case mahjong.MeldPon:
			g.kind = kindTriplet
		case mahjong.MeldChii:
			g.kind = kindRun
			if err := validChiShape(m.Tiles); err != nil {
				return nil, concealed, fmt.Errorf("%w: %v", core.ErrBadMeld, err)
			}
		}
		groups = append(groups, g)
	}
	return groups, concealed, nil
}

// validChiShape checks a three-tile non-identical meld is a real run.
func validChiShape(codes []string) error {
	idxs := make([]int, 0, 3)
	for _, c := range codes {
		idx, err := mahjong.ParseTile(c)
		if err != nil {
			return err
		}
		idxs = append(idxs, idx)
	}
	lo, hi := idxs[0], idxs[0]
	sum := 0
	for _, i := range idxs {
		if i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
		sum += i
	}
	if mahjong.IsHonor(lo) || hi != lo+2 || sum != 3*lo+3 || lo/9 != hi/9 {
		return fmt.Errorf("tiles %v do not form a run", codes)
	}
	return nil
}
