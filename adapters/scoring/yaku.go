package scoring

import (
	"fmt"

	"yakugen/domain/mahjong"
)

// handState carries everything one yaku pass needs: the full decomposition
// (declared melds plus concealed groups, pair first among the concealed
// part), the winning tile, which concealed group it completes, and the
// situational flags off the hand.
type handState struct {
	hand      *mahjong.Hand
	counts    mahjong.Counts // all tiles including melds
	groups    []group        // exactly 5: 1 pair + 4 sets
	winIdx    int
	winGroup  int // index into groups of the group the win tile completes
	closed    bool
	tsumo     bool
	seatWind  int
	roundWind int
}

func (s *handState) pair() group {
	for _, g := range s.groups {
		if g.kind == kindPair {
			return g
		}
	}
	return group{}
}

func (s *handState) isYakuhaiTile(idx int) bool {
	return idx == mahjong.Haku || idx == mahjong.Hatsu || idx == mahjong.Chun ||
		idx == s.seatWind || idx == s.roundWind
}

// countTripletLike counts triplets and quads matching the predicate.
func (s *handState) countTripletLike(pred func(group) bool) int {
	n := 0
	for _, g := range s.groups {
		if (g.kind == kindTriplet || g.kind == kindQuad) && pred(g) {
			n++
		}
	}
	return n
}

// concealedTriplet reports whether the group counts as concealed for
// sanankou/suuankou: closed kans and triplets not completed by a ron.
func (s *handState) concealedTriplet(i int) bool {
	g := s.groups[i]
	if g.open {
		return false
	}
	switch g.kind {
	case kindQuad:
		return true
	case kindTriplet:
		if !s.tsumo && i == s.winGroup {
			// Completed by the discard, so not concealed in the
			// suuankou sense.
			return false
		}
		return !g.meld
	}
	return false
}

// identifyYakuman returns the yakuman list for the decomposition, empty
// when none applies. A found yakuman suppresses regular yaku and dora.
func identifyYakuman(s *handState) []mahjong.YakuResult {
	var results []mahjong.YakuResult

	if s.hand.IsTenhou {
		results = append(results, mahjong.YakuResult{Name: "Tenhou", Han: 13})
	}
	if s.hand.IsChiihou {
		results = append(results, mahjong.YakuResult{Name: "Chiihou", Han: 13})
	}

	// Daisangen: triplets or quads of all three dragons.
	dragons := 0
	for _, idx := range []int{mahjong.Haku, mahjong.Hatsu, mahjong.Chun} {
		tile := idx
		if s.countTripletLike(func(g group) bool { return g.tile == tile }) > 0 {
			dragons++
		}
	}
	if dragons == 3 {
		results = append(results, mahjong.YakuResult{Name: "Daisangen", Han: 13})
	}

	// Suuankou: four concealed triplets/quads, closed hand only.
	if s.closed {
		concealed := 0
		for i := range s.groups {
			if s.concealedTriplet(i) {
				concealed++
			}
		}
		if concealed == 4 {
			results = append(results, mahjong.YakuResult{Name: "Suuankou", Han: 13})
		}
	}

	// Tsuuiisou: every tile an honor.
	allHonors := true
	allTerminals := true
	for idx, n := range s.counts {
		if n == 0 {
			continue
		}
		if !mahjong.IsHonor(idx) {
			allHonors = false
		}
		if !mahjong.IsTerminal(idx) {
			allTerminals = false
		}
	}
	if allHonors {
		results = append(results, mahjong.YakuResult{Name: "Tsuuiisou", Han: 13})
	}
	if allTerminals {
		results = append(results, mahjong.YakuResult{Name: "Chinroutou", Han: 13})
	}

	return results
}

// identifyYaku analyzes one decomposition and returns every applicable
// regular yaku. Dora is appended by the caller only when the list is
// non-empty.
func identifyYaku(s *handState) []mahjong.YakuResult {
	var results []mahjong.YakuResult
	add := func(name string, han int) {
		results = append(results, mahjong.YakuResult{Name: name, Han: han})
	}

	h := s.hand

	// Riichi family (closed hands only; extraction enforces no riichi
	// after open calls, but be defensive about the decomposition).
	if s.closed && h.IsRiichi {
		if h.IsDaburuRiichi {
			add("Double Riichi", 2)
		} else {
			add("Riichi", 1)
		}
		if h.IsIppatsu {
			add("Ippatsu", 1)
		}
		if h.IsOpenRiichi {
			add("Open Riichi", 1)
		}
	}

	if s.closed && s.tsumo {
		add("Menzen Tsumo", 1)
	}

	if checkPinfu(s) {
		add("Pinfu", 1)
	}

	// Tanyao: all simples (kuitan allowed).
	tanyao := true
	for idx, n := range s.counts {
		if n > 0 && !mahjong.IsSimple(idx) {
			tanyao = false
			break
		}
	}
	if tanyao {
		add("Tanyao", 1)
	}

	// Yakuhai: one han per dragon/seat/round triplet; a wind that is both
	// seat and round counts twice.
	for _, g := range s.groups {
		if g.kind != kindTriplet && g.kind != kindQuad {
			continue
		}
		switch g.tile {
		case mahjong.Haku:
			add("Yakuhai (haku)", 1)
		case mahjong.Hatsu:
			add("Yakuhai (hatsu)", 1)
		case mahjong.Chun:
			add("Yakuhai (chun)", 1)
		default:
			if g.tile == s.seatWind {
				add("Yakuhai (seat wind)", 1)
			}
			if g.tile == s.roundWind {
				add("Yakuhai (round wind)", 1)
			}
		}
	}

	// Situational last-tile and kan wins.
	if h.IsHaitei && s.tsumo {
		add("Haitei Raoyue", 1)
	}
	if h.IsHoutei && !s.tsumo {
		add("Houtei Raoyui", 1)
	}
	if h.IsRinshan && s.tsumo {
		add("Rinshan Kaihou", 1)
	}
	if h.IsChankan && !s.tsumo {
		add("Chankan", 1)
	}
	if h.IsRenhou && s.closed && !s.tsumo {
		add("Renhou", 5)
	}

	// Toitoi: four triplets/quads.
	if s.countTripletLike(func(group) bool { return true }) == 4 {
		add("Toitoi", 2)
	}

	// Sanankou: three concealed triplets.
	concealed := 0
	for i := range s.groups {
		if s.concealedTriplet(i) {
			concealed++
		}
	}
	if concealed == 3 {
		add("Sanankou", 2)
	}

	// Sankantsu: three quads.
	if s.countTripletLike(func(g group) bool { return g.kind == kindQuad }) == 3 {
		add("Sankantsu", 2)
	}

	// Shousangen: two dragon triplets plus dragon pair.
	if checkShousangen(s) {
		add("Shosangen", 2)
	}

	// Honroutou: every tile a terminal or honor (toitoi shape by
	// construction; chanta is not awarded alongside).
	honroto := true
	for idx, n := range s.counts {
		if n > 0 && !mahjong.IsTerminalOrHonor(idx) {
			honroto = false
			break
		}
	}
	if honroto {
		add("Honroto", 2)
	}

	// Sanshoku doujun: same run in all three suits.
	if checkSanshoku(s) {
		add("Sanshoku Doujun", hanByMenzen(s, 2))
	}

	// Ittsu: 123 456 789 in one suit.
	if checkIttsu(s) {
		add("Ittsu", hanByMenzen(s, 2))
	}

	// Iipeiko and ryanpeikou (closed only, mutually exclusive).
	if s.closed {
		switch countIdenticalRunPairs(s) {
		case 1:
			add("Iipeiko", 1)
		case 2:
			add("Ryanpeikou", 3)
		}
	}

	// Chanta / junchan: every group holds a terminal (or honor for
	// chanta) and at least one run is present. Junchan supersedes.
	if !honroto {
		if junchan, chanta := checkOutsideHand(s); junchan {
			add("Junchan", hanByMenzen(s, 3))
		} else if chanta {
			add("Chanta", hanByMenzen(s, 2))
		}
	}

	// Flush hands: chinitsu supersedes honitsu.
	if chinitsu, honitsu := checkFlush(s.counts); chinitsu {
		add("Chinitsu", hanByMenzen(s, 6))
	} else if honitsu {
		add("Honitsu", hanByMenzen(s, 3))
	}

	return results
}

// hanByMenzen returns the closed-hand value, one less when the hand is open.
func hanByMenzen(s *handState, closedHan int) int {
	if s.closed {
		return closedHan
	}
	return closedHan - 1
}

func checkPinfu(s *handState) bool {
	if !s.closed {
		return false
	}
	runs := 0
	for _, g := range s.groups {
		switch g.kind {
		case kindRun:
			runs++
		case kindPair:
			if s.isYakuhaiTile(g.tile) {
				return false
			}
		default:
			return false
		}
	}
	if runs != 4 {
		return false
	}
	// Ryanmen wait: the win tile sits on an open edge of its run.
	wg := s.groups[s.winGroup]
	if wg.kind != kindRun {
		return false
	}
	low, high := wg.tile, wg.tile+2
	if s.winIdx == low && low%9 != 6 {
		return true
	}
	if s.winIdx == high && low%9 != 0 {
		return true
	}
	return false
}

func checkShousangen(s *handState) bool {
	triplets := 0
	pairIsDragon := false
	for _, g := range s.groups {
		isDragon := g.tile == mahjong.Haku || g.tile == mahjong.Hatsu || g.tile == mahjong.Chun
		if !isDragon {
			continue
		}
		switch g.kind {
		case kindTriplet, kindQuad:
			triplets++
		case kindPair:
			pairIsDragon = true
		}
	}
	return triplets == 2 && pairIsDragon
}

func checkSanshoku(s *handState) bool {
	// runRanks[rank][suit]
	var runRanks [7][3]bool
	for _, g := range s.groups {
		if g.kind == kindRun {
			runRanks[g.tile%9][g.tile/9] = true
		}
	}
	for rank := 0; rank < 7; rank++ {
		if runRanks[rank][0] && runRanks[rank][1] && runRanks[rank][2] {
			return true
		}
	}
	return false
}

func checkIttsu(s *handState) bool {
	// starts[suit] collects run start ranks present per suit.
	var starts [3][9]bool
	for _, g := range s.groups {
		if g.kind == kindRun {
			starts[g.tile/9][g.tile%9] = true
		}
	}
	for suit := 0; suit < 3; suit++ {
		if starts[suit][0] && starts[suit][3] && starts[suit][6] {
			return true
		}
	}
	return false
}

func countIdenticalRunPairs(s *handState) int {
	runCounts := map[int]int{}
	for _, g := range s.groups {
		if g.kind == kindRun && !g.meld {
			runCounts[g.tile]++
		}
	}
	pairs := 0
	for _, n := range runCounts {
		pairs += n / 2
	}
	return pairs
}

// checkOutsideHand reports (junchan, chanta). Both require every group to
// contain a terminal-or-honor tile and at least one run; junchan
// additionally forbids honors.
func checkOutsideHand(s *handState) (bool, bool) {
	runs := 0
	honors := false
	for _, g := range s.groups {
		hasOutside := false
		for _, t := range g.tiles() {
			if mahjong.IsTerminalOrHonor(t) {
				hasOutside = true
			}
			if mahjong.IsHonor(t) {
				honors = true
			}
		}
		if !hasOutside {
			return false, false
		}
		if g.kind == kindRun {
			runs++
		}
	}
	if runs == 0 {
		return false, false
	}
	return !honors, true
}

// checkFlush reports (chinitsu, honitsu) over the full tile multiset.
func checkFlush(counts mahjong.Counts) (bool, bool) {
	suits := map[int]bool{}
	honors := false
	for idx, n := range counts {
		if n == 0 {
			continue
		}
		if mahjong.IsHonor(idx) {
			honors = true
		} else {
			suits[idx/9] = true
		}
	}
	if len(suits) != 1 {
		return false, false
	}
	return !honors, true
}

// countDora returns the number of dora in the hand given the indicators.
func countDora(counts mahjong.Counts, indicators []string) int {
	total := 0
	for _, code := range indicators {
		idx, err := mahjong.ParseTile(code)
		if err != nil {
			continue
		}
		total += counts[mahjong.DoraFromIndicator(idx)]
	}
	return total
}

func doraResult(n int) mahjong.YakuResult {
	return mahjong.YakuResult{Name: fmt.Sprintf("Dora %d", n), Han: n}
}
