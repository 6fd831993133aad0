package cardrank

import "math/bits"

// primes are the first 13 prime numbers (one per card rank, low to high:
// 2, 3, ..., Ace), packed into the low byte of each [Card]; the evaluator
// does not read them.
var primes = [13]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// CardMask is a 52-bit set of [Card] values, one bit per card, indexed by
// [Card.Index]. It is the working representation passed to [Evaluate] and
// used throughout enumeration: cheap to copy, cheap to combine, and cheap to
// test for membership or overlap.
type CardMask uint64

// NewCardMask builds a [CardMask] from a slice of cards, returning
// [ErrInvalidCard] if any card is invalid and an
// [*InvalidCardConfigurationError] if any card appears more than once.
func NewCardMask(cards []Card) (CardMask, error) {
	var m CardMask
	for _, c := range cards {
		if c == InvalidCard || c.Index() < 0 || 51 < c.Index() {
			return 0, ErrInvalidCard
		}
		bit := CardMask(1) << uint(c.Index())
		if m&bit != 0 {
			return 0, InvalidCardConfiguration("duplicate card " + c.String())
		}
		m |= bit
	}
	return m, nil
}

// Has reports whether c is a member of m.
func (m CardMask) Has(c Card) bool {
	return m&(CardMask(1)<<uint(c.Index())) != 0
}

// With returns m with c added.
func (m CardMask) With(c Card) CardMask {
	return m | CardMask(1)<<uint(c.Index())
}

// Without returns m with c removed.
func (m CardMask) Without(c Card) CardMask {
	return m &^ (CardMask(1) << uint(c.Index()))
}

// Union returns the union of m and n.
func (m CardMask) Union(n CardMask) CardMask {
	return m | n
}

// Intersect returns the intersection of m and n.
func (m CardMask) Intersect(n CardMask) CardMask {
	return m & n
}

// Difference returns the cards in m that are not in n.
func (m CardMask) Difference(n CardMask) CardMask {
	return m &^ n
}

// Complement returns the cards not in m, relative to the full 52-card deck.
func (m CardMask) Complement() CardMask {
	return fullDeckMask &^ m
}

// Count returns the number of cards (population count) in m.
func (m CardMask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// Cards returns the member cards of m, in ascending index order.
func (m CardMask) Cards() []Card {
	v := make([]Card, 0, m.Count())
	for m != 0 {
		i := bits.TrailingZeros64(uint64(m))
		v = append(v, unshuffled[i])
		m &= m - 1
	}
	return v
}

// fullDeckMask is the mask with all 52 standard card bits set.
var fullDeckMask CardMask

func init() {
	for _, c := range unshuffled {
		fullDeckMask |= CardMask(1) << uint(c.Index())
	}
}
