package mahjong

import (
	"fmt"
	"strings"
)

// Tile codes use the compact rank+suit notation: "1m".."9m" (man),
// "1p".."9p" (pin), "1s".."9s" (sou), "1z".."7z" (honors: east, south,
// west, north, white, green, red). There is no 8z or 9z.
//
// Internally tiles are indexed 0..33: man 0-8, pin 9-17, sou 18-26,
// honors 27-33.

const TileKinds = 34

// Counts is a 34-slot tile multiset, the canonical shape for hand analysis.
type Counts [TileKinds]int

// Honor tile indexes
const (
	East  = 27
	South = 28
	West  = 29
	North = 30
	Haku  = 31 // white dragon
	Hatsu = 32 // green dragon
	Chun  = 33 // red dragon
)

var suitOffsets = map[byte]int{'m': 0, 'p': 9, 's': 18, 'z': 27}

// ParseTile converts a tile code to its 0..33 index.
func ParseTile(code string) (int, error) {
	if len(code) != 2 {
		return 0, fmt.Errorf("invalid tile code %q", code)
	}
	rank := int(code[0] - '0')
	offset, ok := suitOffsets[code[1]]
	if !ok {
		return 0, fmt.Errorf("invalid tile suit in %q", code)
	}
	max := 9
	if code[1] == 'z' {
		max = 7
	}
	if rank < 1 || rank > max {
		return 0, fmt.Errorf("invalid tile rank in %q", code)
	}
	return offset + rank - 1, nil
}

// ParseTiles converts a list of tile codes to a Counts multiset.
// A physical hand holds at most 4 copies of any tile.
func ParseTiles(codes []string) (Counts, error) {
	var counts Counts
	for _, code := range codes {
		idx, err := ParseTile(code)
		if err != nil {
			return counts, err
		}
		counts[idx]++
		if counts[idx] > 4 {
			return counts, fmt.Errorf("more than four copies of %s", code)
		}
	}
	return counts, nil
}

// TileCode converts a 0..33 index back to its code.
func TileCode(idx int) string {
	if idx < 0 || idx >= TileKinds {
		return "??"
	}
	suits := "mps"
	if idx >= 27 {
		return fmt.Sprintf("%dz", idx-27+1)
	}
	return fmt.Sprintf("%d%c", idx%9+1, suits[idx/9])
}

// IsHonor reports whether the tile index is a wind or dragon.
func IsHonor(idx int) bool { return idx >= 27 }

// IsTerminal reports whether the tile index is a 1 or 9 of a suit.
func IsTerminal(idx int) bool {
	if IsHonor(idx) {
		return false
	}
	rank := idx % 9
	return rank == 0 || rank == 8
}

// IsTerminalOrHonor reports whether the tile is a yaochuu tile.
func IsTerminalOrHonor(idx int) bool { return IsHonor(idx) || IsTerminal(idx) }

// IsSimple reports whether the tile is a 2-8 suited tile.
func IsSimple(idx int) bool { return !IsTerminalOrHonor(idx) }

// DoraFromIndicator maps an indicator tile to the tile it makes dora.
// Suited tiles wrap 9 to 1; winds wrap north to east; dragons wrap red to white.
func DoraFromIndicator(indicator int) int {
	switch {
	case indicator < 27:
		suit := indicator / 9
		rank := indicator % 9
		return suit*9 + (rank+1)%9
	case indicator >= East && indicator <= North:
		if indicator == North {
			return East
		}
		return indicator + 1
	default:
		if indicator == Chun {
			return Haku
		}
		return indicator + 1
	}
}

// Wind names accepted on hands (per the extraction contract).
var windIndex = map[string]int{
	"east":  East,
	"south": South,
	"west":  West,
	"north": North,
}

// ParseWind converts a wind designator to its tile index.
// An empty designator defaults to east.
func ParseWind(name string) (int, error) {
	if name == "" {
		return East, nil
	}
	idx, ok := windIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("invalid wind %q", name)
	}
	return idx, nil
}

// Total returns the number of tiles in the multiset.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Codes expands the multiset back into sorted tile codes.
func (c Counts) Codes() []string {
	out := make([]string, 0, c.Total())
	for idx, n := range c {
		for i := 0; i < n; i++ {
			out = append(out, TileCode(idx))
		}
	}
	return out
}
