package mahjong

import (
	"yakugen/domain/core"
)

// MeldType classifies a declared group.
type MeldType string

const (
	MeldChii MeldType = "chii"
	MeldPon  MeldType = "pon"
	MeldKan  MeldType = "kan"
)

// Meld is a declared group. Tiles listed here must also appear in the
// hand's Tiles field with matching multiplicity.
type Meld struct {
	Tiles []string `json:"tiles"`
	// IsOpen matters only for kan (closed kan is the one concealed call).
	// Pon and chii are always open.
	IsOpen bool `json:"is_open"`
}

// Type infers the meld kind from its composition: four tiles form a kan,
// three identical tiles a pon, anything else a chii candidate.
func (m Meld) Type() (MeldType, error) {
	switch len(m.Tiles) {
	case 4:
		return MeldKan, nil
	case 3:
		if m.Tiles[0] == m.Tiles[1] && m.Tiles[1] == m.Tiles[2] {
			return MeldPon, nil
		}
		return MeldChii, nil
	default:
		return "", core.NewHandError("melds", "has invalid size")
	}
}

// Opened reports whether the meld counts as open for scoring. Only kan
// honors the IsOpen flag; pon and chii are open by definition.
func (m Meld) Opened() (bool, error) {
	t, err := m.Type()
	if err != nil {
		return false, err
	}
	if t == MeldKan {
		return m.IsOpen, nil
	}
	return true, nil
}

// Hand is the structured puzzle state extracted from a question. Tiles
// holds every tile at the moment of the win, including meld tiles and the
// winning tile itself. Immutable once handed to classification.
type Hand struct {
	Tiles          []string `json:"tiles"`
	Melds          []Meld   `json:"melds,omitempty"`
	WinTile        string   `json:"win_tile"`
	DoraIndicators []string `json:"dora_indicators,omitempty"`

	IsRiichi        bool `json:"is_riichi"`
	IsTsumo         bool `json:"is_tsumo"`
	IsIppatsu       bool `json:"is_ippatsu"`
	IsRinshan       bool `json:"is_rinshan"`
	IsChankan       bool `json:"is_chankan"`
	IsHaitei        bool `json:"is_haitei"`
	IsHoutei        bool `json:"is_houtei"`
	IsDaburuRiichi  bool `json:"is_daburu_riichi"`
	IsNagashiMangan bool `json:"is_nagashi_mangan"`
	IsTenhou        bool `json:"is_tenhou"`
	IsChiihou       bool `json:"is_chiihou"`
	IsRenhou        bool `json:"is_renhou"`
	IsOpenRiichi    bool `json:"is_open_riichi"`

	// Winds are east/south/west/north; empty defaults to east.
	PlayerWind string `json:"player_wind,omitempty"`
	RoundWind  string `json:"round_wind,omitempty"`

	Paarenchan     int `json:"paarenchan"`
	KyoutakuNumber int `json:"kyoutaku_number"` // riichi deposits, 1000-point sticks
	TsumiNumber    int `json:"tsumi_number"`    // continuation sticks, 100 points each
}

// Validate applies the structural invariants that must hold before any
// scoring attempt: well-formed tile codes, at least 14 tiles, winning tile
// present in the hand, meld tiles covered by the hand with multiplicity,
// and well-formed dora indicators. Returns a core.ErrHandInvalid-wrapped
// error naming the violated field.
func (h *Hand) Validate() error {
	if len(h.Tiles) == 0 {
		return core.ErrEmptyTiles
	}

	counts, err := ParseTiles(h.Tiles)
	if err != nil {
		return core.ErrBadTileCode
	}

	if len(h.DoraIndicators) > 0 {
		if _, err := ParseTiles(h.DoraIndicators); err != nil {
			return core.ErrBadDora
		}
	}

	for _, meld := range h.Melds {
		meldCounts, err := ParseTiles(meld.Tiles)
		if err != nil {
			return core.ErrBadMeld
		}
		if _, err := meld.Type(); err != nil {
			return core.ErrBadMeld
		}
		for idx, n := range meldCounts {
			if n > 0 && counts[idx] < n {
				return core.ErrBadMeld
			}
		}
	}

	if len(h.Tiles) < 14 {
		return core.ErrShortHand
	}

	winIdx, err := ParseTile(h.WinTile)
	if err != nil {
		return core.ErrWinTileAbsent
	}
	if counts[winIdx] == 0 {
		return core.ErrWinTileAbsent
	}

	return nil
}

// Counts returns the hand's tile multiset. Call Validate first; malformed
// codes yield a zero multiset here.
func (h *Hand) Counts() Counts {
	counts, _ := ParseTiles(h.Tiles)
	return counts
}

// IsClosed reports whether the hand has no open melds. A hand whose only
// melds are closed kans still counts as closed.
func (h *Hand) IsClosed() bool {
	for _, meld := range h.Melds {
		open, err := meld.Opened()
		if err != nil || open {
			return false
		}
	}
	return true
}
