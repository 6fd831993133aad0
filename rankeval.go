package cardrank

// straightPattern is one of the ten straight bit patterns over 13 rank bits
// (bit i set means rank i, Two=0..Ace=12, is present), ordered from the
// Ace-high straight down to the wheel. The wheel pattern's "top" rank is
// Five (index 3), per the A-2-3-4-5 low-straight convention.
type straightPattern struct {
	mask uint16
	top  int
}

// standardStraights are the straight patterns for a full 13-rank deck.
var standardStraights = buildStraights(0, 12, 3, 1<<0|1<<1|1<<2|1<<3|1<<12)

// shortDeckStraights are the straight patterns for a short deck (ranks
// Six..Ace only), where the low straight is A-6-7-8-9 with top card Nine
// (index 7).
var shortDeckStraights = buildStraights(4, 12, 7, 1<<4|1<<5|1<<6|1<<7|1<<12)

func buildStraights(lo, hi, wheelTop int, wheelMask uint16) []straightPattern {
	var v []straightPattern
	for top := hi; top >= lo+4; top-- {
		var mask uint16
		for r := top - 4; r <= top; r++ {
			mask |= 1 << uint(r)
		}
		v = append(v, straightPattern{mask: mask, top: top})
	}
	v = append(v, straightPattern{mask: wheelMask, top: wheelTop})
	return v
}

// straightTop returns the top rank index of the best straight contained in
// present (a 13-bit rank-presence mask), and whether one was found. When
// shortDeck is true, the wheel is the short-deck low straight (A-6-7-8-9).
func straightTop(present uint16, shortDeck bool) (int, bool) {
	patterns := standardStraights
	if shortDeck {
		patterns = shortDeckStraights
	}
	for _, p := range patterns {
		if present&p.mask == p.mask {
			return p.top, true
		}
	}
	return 0, false
}

// presentRanksDesc returns the rank indices set in present, highest first.
func presentRanksDesc(present uint16) []int {
	var v []int
	for r := 12; r >= 0; r-- {
		if present&(1<<uint(r)) != 0 {
			v = append(v, r)
		}
	}
	return v
}

// without returns ranks with any of excl removed, preserving order.
func without(ranks []int, excl ...int) []int {
	skip := make(map[int]bool, len(excl))
	for _, e := range excl {
		skip[e] = true
	}
	v := make([]int, 0, len(ranks))
	for _, r := range ranks {
		if !skip[r] {
			v = append(v, r)
		}
	}
	return v
}

// bestHandFromCounts classifies a 5-to-7 card non-flush hand given its
// per-rank counts (index 0=Two .. 12=Ace, values 0..4), returning the
// HandValue of the best 5-card hand it contains. shortDeck selects the
// short-deck wheel (A-6-7-8-9) when checking for straights.
//
// This mirrors the classical rank-histogram classification: quads, full
// house, straight, trips, two pair, pair, high card, in that precedence
// order, since flush and straight-flush are intercepted earlier by the
// suit-mask check in [Evaluate] and never reach this path.
func bestHandFromCounts(counts [13]int, shortDeck bool) HandValue {
	var present uint16
	var quads, trips, pairs []int
	for r := 12; r >= 0; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, r)
			present |= 1 << uint(r)
		case 3:
			trips = append(trips, r)
			present |= 1 << uint(r)
		case 2:
			pairs = append(pairs, r)
			present |= 1 << uint(r)
		case 1:
			present |= 1 << uint(r)
		}
	}
	all := presentRanksDesc(present)
	switch {
	case len(quads) > 0:
		kicker := without(all, quads[0])[0]
		return newHandValue(Quads, uint32(quads[0])*13+uint32(kicker))
	case len(trips) >= 2:
		return newHandValue(FullHouse, uint32(trips[0])*13+uint32(trips[1]))
	case len(trips) == 1 && len(pairs) >= 1:
		return newHandValue(FullHouse, uint32(trips[0])*13+uint32(pairs[0]))
	}
	if top, ok := straightTop(present, shortDeck); ok {
		return newHandValue(Straight, uint32(top))
	}
	switch {
	case len(trips) == 1:
		k := without(all, trips[0])
		return newHandValue(Trips, uint32(trips[0])*169+uint32(k[0])*13+uint32(k[1]))
	case len(pairs) >= 2:
		k := without(all, pairs[0], pairs[1])
		return newHandValue(TwoPair, uint32(pairs[0])*169+uint32(pairs[1])*13+uint32(k[0]))
	case len(pairs) == 1:
		k := without(all, pairs[0])
		return newHandValue(OnePair, uint32(pairs[0])*2197+uint32(k[0])*169+uint32(k[1])*13+uint32(k[2]))
	default:
		k := all
		return newHandValue(HighCard, uint32(k[0])*28561+uint32(k[1])*2197+uint32(k[2])*169+uint32(k[3])*13+uint32(k[4]))
	}
}

// bestFlushFromMask classifies a 5-to-7 bit same-suit rank mask (bit i set
// means rank i present in that suit) as a flush or straight-flush, per
// [FlushLookup]'s contract of reducing to the best 5-card subset.
func bestFlushFromMask(mask uint16, shortDeck bool) HandValue {
	if top, ok := straightTop(mask, shortDeck); ok {
		return newHandValue(StraightFlush, uint32(top))
	}
	k := presentRanksDesc(mask)
	return newHandValue(Flush, uint32(k[0])*28561+uint32(k[1])*2197+uint32(k[2])*169+uint32(k[3])*13+uint32(k[4]))
}
