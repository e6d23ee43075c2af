package scoring

import "yakugen/domain/mahjong"

// calculateFu returns the fu for one decomposition. Chiitoitsu (fixed 25)
// and pinfu (20 tsumo / 30 ron) are handled by the caller.
func calculateFu(s *handState) int {
	fu := 20

	if s.closed && !s.tsumo {
		fu += 10 // menzen ron
	}
	if s.tsumo {
		fu += 2
	}

	// Wait shape. Tanki, kanchan and penchan add 2; ryanmen and shanpon
	// add nothing.
	wg := s.groups[s.winGroup]
	switch wg.kind {
	case kindPair:
		fu += 2 // tanki
	case kindRun:
		low := wg.tile
		switch {
		case s.winIdx == low+1:
			fu += 2 // kanchan
		case s.winIdx == low+2 && low%9 == 0:
			fu += 2 // penchan 12_3
		case s.winIdx == low && low%9 == 6:
			fu += 2 // penchan 7_89
		}
	}

	if p := s.pair(); s.isYakuhaiTile(p.tile) {
		fu += 2
		// Seat wind doubling when the pair is both seat and round wind.
		if p.tile == s.seatWind && p.tile == s.roundWind {
			fu += 2
		}
	}

	for i, g := range s.groups {
		base := 0
		switch g.kind {
		case kindTriplet:
			base = 2
			// A ron-completed triplet counts as open.
			if !g.open && (s.tsumo || i != s.winGroup) {
				base = 4
			}
		case kindQuad:
			base = 8
			if !g.open {
				base = 16
			}
		default:
			continue
		}
		if mahjong.IsTerminalOrHonor(g.tile) {
			base *= 2
		}
		fu += base
	}

	return roundUpFu(fu)
}

func roundUpFu(fu int) int {
	if fu%10 != 0 {
		fu += 10 - fu%10
	}
	return fu
}

// basePoints applies the limit-hand table to (han, fu).
func basePoints(han, fu int) int {
	switch {
	case han >= 13:
		return 8000
	case han >= 11:
		return 6000
	case han >= 8:
		return 4000
	case han >= 6:
		return 3000
	}
	base := fu * pow2(2+han)
	if han >= 5 || base > 2000 {
		return 2000
	}
	return base
}

func pow2(n int) int {
	return 1 << n
}

// winnerPoints returns the main payment the winner receives, including
// honba and riichi-stick bonuses.
func winnerPoints(base int, dealer, tsumo bool, tsumi, kyoutaku int) int {
	var main int
	if tsumo {
		// The largest single payment, i.e. what the dealer pays (or
		// what each player pays a winning dealer).
		main = roundUp100(base*2) + 100*tsumi
	} else {
		mult := 4
		if dealer {
			mult = 6
		}
		main = roundUp100(base*mult) + 300*tsumi
	}
	return main + 1000*kyoutaku
}

func roundUp100(n int) int {
	if n%100 != 0 {
		n += 100 - n%100
	}
	return n
}
