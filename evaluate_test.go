package cardrank

import "testing"

func mustMask(t *testing.T, s string) CardMask {
	t.Helper()
	cards := Must(s)
	mask, err := NewCardMask(cards)
	if err != nil {
		t.Fatalf("%q: unexpected error: %v", s, err)
	}
	return mask
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name string
		hand string
		cat  Category
	}{
		{"straight flush", "As Ks Qs Js Ts", StraightFlush},
		{"wheel straight flush", "As 2s 3s 4s 5s", StraightFlush},
		{"quads", "As Ac Ah Ad 2s", Quads},
		{"full house", "As Ac Ah 2s 2c", FullHouse},
		{"flush", "As Ts 7s 4s 2s", Flush},
		{"straight", "9h 8s 7d 6c 5h", Straight},
		{"wheel straight", "Ah 2s 3d 4c 5h", Straight},
		{"trips", "As Ac Ah 2s 3c", Trips},
		{"two pair", "As Ac 2s 2c 3h", TwoPair},
		{"one pair", "As Ac 2s 3c 4h", OnePair},
		{"high card", "As Ts 7d 4c 2h", HighCard},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := Evaluate(mustMask(t, test.hand))
			if v.Category() != test.cat {
				t.Errorf("%q: expected category %s, got: %s", test.hand, test.cat, v.Category())
			}
		})
	}
}

func TestEvaluateCategoryOrdering(t *testing.T) {
	order := []string{
		"As Ts 7d 4c 2h", // high card
		"As Ac 2s 3c 4h", // one pair
		"As Ac 2s 2c 3h", // two pair
		"As Ac Ah 2s 3c", // trips
		"9h 8s 7d 6c 5h", // straight
		"As Ts 7s 4s 2s", // flush
		"As Ac Ah 2s 2c", // full house
		"As Ac Ah Ad 2s", // quads
		"As Ks Qs Js Ts", // straight flush
	}
	var prev HandValue
	for i, hand := range order {
		v := Evaluate(mustMask(t, hand))
		if i > 0 && v <= prev {
			t.Errorf("expected %q (%v) to rank above previous category (%v)", hand, v, prev)
		}
		prev = v
	}
}

func TestEvaluateSevenCardBestOfSeven(t *testing.T) {
	// pair of aces plus a made flush among the remaining cards: the flush
	// must win out over the pair when evaluating the best 5 of 7.
	v := Evaluate(mustMask(t, "As Ac Ks Qs Js 9s 2h"))
	if v.Category() != Flush {
		t.Fatalf("expected flush, got: %s", v.Category())
	}
}

func TestEvaluateTotalOrderingTransitive(t *testing.T) {
	hands := []string{
		"As Ks Qs Js Ts",
		"Ah Ac Ad As 2h",
		"Ah Ac Ad 2h 2c",
		"9h 8s 7d 6c 5h",
		"As Ts 7s 4s 2s",
	}
	values := make([]HandValue, len(hands))
	for i, h := range hands {
		values[i] = Evaluate(mustMask(t, h))
	}
	for i := range values {
		for j := range values {
			a, b := values[i], values[j]
			switch {
			case a < b && !(b > a):
				t.Fatalf("ordering not consistent for %d,%d", i, j)
			case a == b && i != j && hands[i] != hands[j]:
				// distinct hands may legitimately tie in strength only if
				// they are the same category and ordinal; not exercised here.
			}
		}
	}
}

func TestEvaluateShortDeckFlushBeatsFullHouse(t *testing.T) {
	flush := EvaluateShortDeck(mustMask(t, "Ah Kh Qh Jh 9h"))
	full := EvaluateShortDeck(mustMask(t, "As Ac Ah Ks Kc"))
	if flush.Category() != FullHouse {
		t.Fatalf("expected flush to carry the swapped FullHouse category, got: %s", flush.Category())
	}
	if full.Category() != Flush {
		t.Fatalf("expected full house to carry the swapped Flush category, got: %s", full.Category())
	}
	if flush <= full {
		t.Errorf("expected short-deck flush to outrank full house")
	}
}

func TestEvaluateShortDeckWheel(t *testing.T) {
	v := EvaluateShortDeck(mustMask(t, "Ah 6s 7d 8c 9h"))
	if v.Category() != Straight {
		t.Fatalf("expected straight, got: %s", v.Category())
	}
	if v.Ordinal() != uint32(Nine.Index()) {
		t.Errorf("expected top card Nine, got ordinal %d", v.Ordinal())
	}
}

func TestEvaluateQuadsKicker(t *testing.T) {
	low := Evaluate(mustMask(t, "As Ac Ah Ad 2s"))
	high := Evaluate(mustMask(t, "As Ac Ah Ad Ks"))
	if low >= high {
		t.Errorf("expected quad aces with a king kicker to beat quad aces with a deuce kicker")
	}
}
