package cardrank

// Evaluate returns the HandValue of mask, which must contain at most 7
// cards. Per §4.C: split into per-suit rank bitmasks; if any suit has 5 or
// more ranks, return its FlushLookup entry; otherwise sum the per-suit
// contributions via SuitHash into a RankKey and look it up through the
// row-offset perfect hash.
//
// Evaluate is total on any mask with 5 to 7 bits set. Masks with fewer than
// 5 cards or more than 7 are the caller's responsibility to reject — see
// the open question in the design notes on n_cards > 7.
func Evaluate(mask CardMask) HandValue {
	suitMasks := splitSuits(mask)
	for _, sm := range suitMasks {
		if popcount13(sm) >= 5 {
			return FlushLookup[sm]
		}
	}
	key := SuitHash[suitMasks[0]] + SuitHash[suitMasks[1]] + SuitHash[suitMasks[2]] + SuitHash[suitMasks[3]]
	return noflushValue(key)
}

// splitSuits decomposes mask into its four per-suit 13-bit rank bitmasks,
// indexed by [Suit.Index].
func splitSuits(mask CardMask) [4]uint16 {
	var v [4]uint16
	for mask != 0 {
		i := trailingZero(mask)
		c := unshuffled[i]
		v[c.SuitIndex()] |= 1 << uint(c.RankIndex())
		mask &= mask - 1
	}
	return v
}

func trailingZero(m CardMask) int {
	n := 0
	for m&1 == 0 {
		m >>= 1
		n++
	}
	return n
}

// EvaluateShortDeck returns the HandValue of mask under short-deck rules:
// ranks Two through Five are assumed absent from mask, the low straight is
// A-6-7-8-9 (top card Nine) rather than the wheel, and Flush outranks Full
// House.
func EvaluateShortDeck(mask CardMask) HandValue {
	suitMasks := splitSuits(mask)
	for _, sm := range suitMasks {
		if popcount13(sm) >= 5 {
			return bestFlushFromMask(sm, true).toShortDeckOrder()
		}
	}
	var counts [13]int
	for mask != 0 {
		i := trailingZero(mask)
		c := unshuffled[i]
		counts[c.RankIndex()]++
		mask &= mask - 1
	}
	return bestHandFromCounts(counts, true).toShortDeckOrder()
}

// toShortDeckOrder swaps the Flush and Full House categories, since in
// short-deck hold'em a flush is harder to make than a full house and so
// outranks it.
func (v HandValue) toShortDeckOrder() HandValue {
	switch v.Category() {
	case Flush:
		return newHandValue(FullHouse, v.Ordinal())
	case FullHouse:
		return newHandValue(Flush, v.Ordinal())
	}
	return v
}
