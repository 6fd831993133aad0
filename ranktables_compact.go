//go:build !large

package cardrank

import "sort"

// rowWidth is the row width (2^12) used by the compact row-offset perfect
// hash over the non-flush lookup table. This is the default storage mode;
// build with -tags large to select ranktables_large.go's direct-addressed
// table instead.
const rowWidth = 1 << 12

// RowOffsets holds, per row (key >> 12), the smallest non-negative offset
// such that key+offset never collides with another row's placement. Rows
// that contain no valid key are absent (offset 0, unused).
var RowOffsets map[uint32]int64

// NoflushSlots is the backing store for the non-flush lookup:
// NoflushSlots[key + RowOffsets[key>>12]] is the HandValue for that RankKey.
// Implemented as a sparse map rather than a flat array, since the
// valid-key domain (every 0-4-per-rank count vector summing to 5-7 cards)
// occupies a tiny fraction of the raw key space; the perfect_hash formula
// and row-offset contract are unchanged by the underlying storage choice.
var NoflushSlots map[int64]HandValue

// buildNoflushTable assigns row-offset perfect-hash slots to every entry
// from [generateNoflushEntries], row by row in decreasing density order,
// per the build-time table generation algorithm.
func buildNoflushTable() {
	entries := generateNoflushEntries()

	rows := make(map[uint32][]noflushEntry)
	for _, e := range entries {
		row := e.key >> 12
		rows[row] = append(rows[row], e)
	}
	type rowInfo struct {
		row     uint32
		entries []noflushEntry
	}
	var ordered []rowInfo
	for row, es := range rows {
		ordered = append(ordered, rowInfo{row: row, entries: es})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].entries) != len(ordered[j].entries) {
			return len(ordered[i].entries) > len(ordered[j].entries)
		}
		return ordered[i].row < ordered[j].row
	})

	RowOffsets = make(map[uint32]int64, len(ordered))
	NoflushSlots = make(map[int64]HandValue, len(entries))
	for _, ri := range ordered {
		offset := findRowOffset(ri.entries)
		RowOffsets[ri.row] = offset
		for _, e := range ri.entries {
			NoflushSlots[int64(e.key)+offset] = e.value
		}
	}
}

// findRowOffset finds the smallest non-negative offset such that every
// entry in row can be placed at key+offset without colliding with a
// different value already occupying that slot.
func findRowOffset(row []noflushEntry) int64 {
offsetLoop:
	for offset := int64(0); ; offset++ {
		for _, e := range row {
			if existing, ok := NoflushSlots[int64(e.key)+offset]; ok && existing != e.value {
				continue offsetLoop
			}
		}
		return offset
	}
}

// perfectHash maps a RankKey to its non-flush lookup slot using the compact
// row-offset scheme: perfect_hash(key) = key + ROW_OFFSETS[key>>12].
func perfectHash(key uint32) int64 {
	return int64(key) + RowOffsets[key>>12]
}

// noflushValue resolves a RankKey to its classified HandValue through the
// row-offset perfect hash.
func noflushValue(key uint32) HandValue {
	return NoflushSlots[perfectHash(key)]
}

// noflushTableStats reports the populated slot count and storage mode name,
// for the one-line build diagnostic in ranktables.go's init.
func noflushTableStats() (int, string) {
	return len(NoflushSlots), "compact-row-offset"
}
