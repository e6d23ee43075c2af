package scoring

import (
	"yakugen/domain/mahjong"
)

type groupKind int

const (
	kindPair groupKind = iota
	kindRun
	kindTriplet
	kindQuad
)

// group is one unit of a decomposed winning hand: the pair, a run, a
// triplet, or a quad. Declared melds become groups with meld=true.
type group struct {
	kind groupKind
	tile int  // lowest tile index in the group
	open bool // open call; false for concealed groups and closed kans
	meld bool // came from a declared call
}

func (g group) tiles() []int {
	switch g.kind {
	case kindPair:
		return []int{g.tile, g.tile}
	case kindRun:
		return []int{g.tile, g.tile + 1, g.tile + 2}
	case kindTriplet:
		return []int{g.tile, g.tile, g.tile}
	default:
		return []int{g.tile, g.tile, g.tile, g.tile}
	}
}

func (g group) contains(idx int) bool {
	for _, t := range g.tiles() {
		if t == idx {
			return true
		}
	}
	return false
}

// decomposeConcealed enumerates every way to split the concealed tiles
// into nSets runs/triplets plus one pair. The pair is chosen first, then
// sets are peeled greedily from the lowest occupied index; trying the
// triplet before the run at each position covers all distinct shapes.
func decomposeConcealed(counts mahjong.Counts, nSets int) [][]group {
	var results [][]group
	for pairIdx := 0; pairIdx < mahjong.TileKinds; pairIdx++ {
		if counts[pairIdx] < 2 {
			continue
		}
		rest := counts
		rest[pairIdx] -= 2
		pair := group{kind: kindPair, tile: pairIdx}
		for _, sets := range decomposeSets(rest, nSets) {
			dec := append([]group{pair}, sets...)
			results = append(results, dec)
		}
	}
	return results
}

// decomposeSets splits counts into exactly nSets runs/triplets, returning
// every distinct decomposition (the empty set when counts is empty and
// nSets is zero).
func decomposeSets(counts mahjong.Counts, nSets int) [][]group {
	first := -1
	for idx := 0; idx < mahjong.TileKinds; idx++ {
		if counts[idx] > 0 {
			first = idx
			break
		}
	}
	if first == -1 {
		if nSets == 0 {
			return [][]group{{}}
		}
		return nil
	}
	if nSets == 0 {
		return nil
	}

	var results [][]group

	// Triplet at first
	if counts[first] >= 3 {
		rest := counts
		rest[first] -= 3
		for _, tail := range decomposeSets(rest, nSets-1) {
			dec := append([]group{{kind: kindTriplet, tile: first}}, tail...)
			results = append(results, dec)
		}
	}

	// Run starting at first (suited tiles only, rank <= 7)
	if !mahjong.IsHonor(first) && first%9 <= 6 && counts[first+1] > 0 && counts[first+2] > 0 {
		rest := counts
		rest[first]--
		rest[first+1]--
		rest[first+2]--
		for _, tail := range decomposeSets(rest, nSets-1) {
			dec := append([]group{{kind: kindRun, tile: first}}, tail...)
			results = append(results, dec)
		}
	}

	return results
}

// isChiitoitsu reports whether the tiles form seven distinct pairs.
func isChiitoitsu(counts mahjong.Counts) bool {
	pairs := 0
	for _, n := range counts {
		switch n {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

var kokushiTiles = []int{
	0, 8, 9, 17, 18, 26, // terminals
	mahjong.East, mahjong.South, mahjong.West, mahjong.North,
	mahjong.Haku, mahjong.Hatsu, mahjong.Chun,
}

// isKokushi reports whether the tiles are the thirteen-orphans shape: each
// terminal and honor at least once, one of them doubled, nothing else.
func isKokushi(counts mahjong.Counts) bool {
	if counts.Total() != 14 {
		return false
	}
	doubled := false
	covered := 0
	for _, idx := range kokushiTiles {
		switch counts[idx] {
		case 1:
			covered++
		case 2:
			covered++
			if doubled {
				return false
			}
			doubled = true
		default:
			return false
		}
	}
	return covered == 13 && doubled
}
