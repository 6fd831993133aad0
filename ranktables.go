package cardrank

// RankWeight holds the per-rank weights used to compute a RankKey: the sum,
// over each card in a multiset, of RankWeight[card.RankIndex()]. Weights are
// powers of five so that the key is exactly the base-5 encoding of the
// per-rank count vector (each rank occurs 0-4 times) — every distinct count
// distribution over 0-7 total cards therefore maps to a unique key, and the
// maximum key is 4*RankWeight[12] + 3*RankWeight[11] (all four Aces plus
// three Kings).
var RankWeight [13]uint32

// SuitHash gives the RankKey contribution of a 13-bit per-suit rank
// bitmask: SuitHash[mask] is the sum of RankWeight[r] for every rank bit r
// set in mask. A 7-card hand's full RankKey is the sum of SuitHash over its
// four per-suit bitmasks.
var SuitHash [1 << 13]uint32

// FlushLookup maps a 13-bit per-suit rank bitmask with 5 or more bits set to
// the HandValue of its best 5-card subset (straight flush or flush).
var FlushLookup [1 << 13]HandValue

func init() {
	for r := range RankWeight {
		w := uint32(1)
		for i := 0; i < r; i++ {
			w *= 5
		}
		RankWeight[r] = w
	}
	for mask := 0; mask < len(SuitHash); mask++ {
		var sum uint32
		for r := 0; r < 13; r++ {
			if mask&(1<<uint(r)) != 0 {
				sum += RankWeight[r]
			}
		}
		SuitHash[mask] = sum
	}
	buildFlushLookup()
	buildNoflushTable()
	entries, mode := noflushTableStats()
	tableLog.Debug("perfect-hash tables built", "mode", mode, "entries", entries)
}

// buildFlushLookup populates FlushLookup by exhaustive 5-of-n reduction over
// every 13-bit same-suit rank bitmask with 5 to 7 bits set.
func buildFlushLookup() {
	for mask := 0; mask < len(FlushLookup); mask++ {
		if popcount13(uint16(mask)) >= 5 {
			FlushLookup[mask] = bestFlushFromMask(uint16(mask), false)
		}
	}
}

func popcount13(mask uint16) int {
	n := 0
	for mask != 0 {
		n += int(mask & 1)
		mask >>= 1
	}
	return n
}

// noflushEntry is one (key, value) pair destined for the non-flush RankKey
// lookup table, independent of which storage backend (ranktables_compact.go
// or ranktables_large.go) ends up indexing it — §4.B/§6 of the design notes
// name two storage modes chosen at build time, and both are built from the
// same entry set.
type noflushEntry struct {
	key   uint32
	value HandValue
}

// generateNoflushEntries enumerates every valid non-flush rank-count vector
// (0-4 occurrences per rank, 5-7 cards total) and classifies each into its
// HandValue. buildNoflushTable (one implementation per storage backend,
// selected by build tag) consumes this entry set to populate whichever
// concrete lookup it provides.
func generateNoflushEntries() []noflushEntry {
	var entries []noflushEntry
	var counts [13]int
	var walk func(rank, remaining int)
	walk = func(rank, remaining int) {
		if rank == 13 {
			total := 7 - remaining
			if total >= 5 && total <= 7 {
				key := uint32(0)
				for r := 0; r < 13; r++ {
					key += uint32(counts[r]) * RankWeight[r]
				}
				entries = append(entries, noflushEntry{key: key, value: bestHandFromCounts(counts, false)})
			}
			return
		}
		maxAtRank := remaining
		if maxAtRank > 4 {
			maxAtRank = 4
		}
		for n := 0; n <= maxAtRank; n++ {
			counts[rank] = n
			walk(rank+1, remaining-n)
		}
		counts[rank] = 0
	}
	// remaining tracks "cards left to place" against an upper bound of 7;
	// a vector is valid once its total lands in [5,7].
	walk(0, 7)
	return entries
}
