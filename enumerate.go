package cardrank

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// EnumResult aggregates the outcome of rolling out many boards for a fixed
// set of player pockets. Every field is indexed by player. Merge is
// componentwise addition, so partial results from independent workers
// (goroutines, or independent sampling batches) combine by summing.
type EnumResult struct {
	Players int
	Samples int64
	Wins    []int64
	Ties    []int64
	Losses  []int64
	Scoops  []int64
	// TiedShares[i][k] counts the rollouts in which player i shared the
	// winning hand with exactly k-1 other players (k=1 is an outright win).
	TiedShares []map[int]int64
	// EV accumulates each player's equity contribution (1 for an outright
	// win, 1/k for a k-way tie, 0 for a loss) across all rollouts; Equity
	// divides by Samples.
	EV []float64
}

// NewEnumResult allocates a zeroed EnumResult for the given player count.
func NewEnumResult(players int) *EnumResult {
	r := &EnumResult{
		Players:    players,
		Wins:       make([]int64, players),
		Ties:       make([]int64, players),
		Losses:     make([]int64, players),
		Scoops:     make([]int64, players),
		TiedShares: make([]map[int]int64, players),
		EV:         make([]float64, players),
	}
	for i := range r.TiedShares {
		r.TiedShares[i] = make(map[int]int64)
	}
	return r
}

// Equity returns player i's equity: cumulative EV divided by sample count.
func (r *EnumResult) Equity(i int) float64 {
	if r.Samples == 0 {
		return 0
	}
	return r.EV[i] / float64(r.Samples)
}

// Merge adds other's tallies into r componentwise.
func (r *EnumResult) Merge(other *EnumResult) {
	r.Samples += other.Samples
	for i := 0; i < r.Players; i++ {
		r.Wins[i] += other.Wins[i]
		r.Ties[i] += other.Ties[i]
		r.Losses[i] += other.Losses[i]
		r.Scoops[i] += other.Scoops[i]
		r.EV[i] += other.EV[i]
		for k, n := range other.TiedShares[i] {
			r.TiedShares[i][k] += n
		}
	}
}

// handEvaluator evaluates one player's pocket against a completed board.
type handEvaluator func(pocket, board []Card) (HandValue, error)

// evaluatorFor resolves the hand evaluator and full board size for a
// variant. Holdem, Omaha and Short-Deck are wired; Holdem8 and Omaha8 are
// scored on their high hand only. Other variants report
// [ErrUnsupportedGameType].
func evaluatorFor(variant GameVariant) (handEvaluator, int, error) {
	switch variant {
	case Holdem, Holdem8:
		return func(pocket, board []Card) (HandValue, error) { return EvaluateHoldem(pocket, board) }, 5, nil
	case OmahaGame, Omaha8:
		return func(pocket, board []Card) (HandValue, error) { return EvaluateOmahaHi(pocket, board) }, 5, nil
	case ShortDeck:
		return func(pocket, board []Card) (HandValue, error) { return EvaluateShortDeckHand(pocket, board) }, 5, nil
	}
	return nil, 0, ErrUnsupportedGameType
}

// tallyRollout scores one completed board against every pocket and folds
// the outcome into result.
func tallyRollout(result *EnumResult, eval handEvaluator, pockets [][]Card, board []Card) error {
	values := make([]HandValue, len(pockets))
	best := InvalidHandValue
	for i, pocket := range pockets {
		v, err := eval(pocket, board)
		if err != nil {
			return err
		}
		values[i] = v
		if v > best {
			best = v
		}
	}
	var winners []int
	for i, v := range values {
		if v == best {
			winners = append(winners, i)
		}
	}
	share := 1.0 / float64(len(winners))
	winSet := make(map[int]bool, len(winners))
	for _, i := range winners {
		winSet[i] = true
	}
	for i := range pockets {
		switch {
		case !winSet[i]:
			result.Losses[i]++
		case len(winners) == 1:
			result.Wins[i]++
			result.Scoops[i]++
		default:
			result.Ties[i]++
		}
		if winSet[i] {
			result.TiedShares[i][len(winners)]++
			result.EV[i] += share
		}
	}
	result.Samples++
	return nil
}

// liveDeck returns the cards of a full (or short) deck not already dealt to
// a pocket, the board, or marked dead.
func liveDeck(short bool, pockets [][]Card, board, dead []Card) ([]Card, error) {
	var used []Card
	used = append(used, board...)
	used = append(used, dead...)
	for _, p := range pockets {
		used = append(used, p...)
	}
	usedMask, err := NewCardMask(used)
	if err != nil {
		return nil, err
	}
	base := unshuffled
	if short {
		base = unshuffledShort
	}
	var live []Card
	for _, c := range base {
		if !usedMask.Has(c) {
			live = append(live, c)
		}
	}
	return live, nil
}

// EnumerateExhaustive rolls out every combination of the missing board
// cards from the live deck, per §4.E. The number of rollouts always equals
// choose(len(live deck), missing board cards).
func EnumerateExhaustive(ctx context.Context, variant GameVariant, pockets [][]Card, board, dead []Card) (*EnumResult, error) {
	if len(pockets) == 0 || len(pockets) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}
	eval, boardSize, err := evaluatorFor(variant)
	if err != nil {
		return nil, err
	}
	if len(board) > boardSize {
		return nil, ErrUnsupportedBoardConfiguration
	}
	missing := boardSize - len(board)
	live, err := liveDeck(variant == ShortDeck, pockets, board, dead)
	if err != nil {
		return nil, err
	}
	result := NewEnumResult(len(pockets))
	if missing == 0 {
		return result, tallyRollout(result, eval, pockets, board)
	}
	if missing == len(live) {
		return result, tallyRollout(result, eval, pockets, append(append([]Card{}, board...), live...))
	}
	gen, combo := NewCombinGen(live, missing)
	for gen.Next() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		full := append(append([]Card{}, board...), combo...)
		if err := tallyRollout(result, eval, pockets, full); err != nil {
			return result, err
		}
	}
	return result, nil
}

// EnumerateSample draws n rollouts of the missing board cards, uniformly
// without replacement, via a partial Fisher-Yates shuffle of the live deck
// per iteration.
func EnumerateSample(ctx context.Context, variant GameVariant, pockets [][]Card, board, dead []Card, n int, rng *rand.Rand) (*EnumResult, error) {
	if len(pockets) == 0 || len(pockets) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}
	eval, boardSize, err := evaluatorFor(variant)
	if err != nil {
		return nil, err
	}
	if len(board) > boardSize {
		return nil, ErrUnsupportedBoardConfiguration
	}
	missing := boardSize - len(board)
	live, err := liveDeck(variant == ShortDeck, pockets, board, dead)
	if err != nil {
		return nil, err
	}
	result := NewEnumResult(len(pockets))
	for s := 0; s < n; s++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		draw := partialFisherYates(rng, live, missing)
		full := append(append([]Card{}, board...), draw...)
		if err := tallyRollout(result, eval, pockets, full); err != nil {
			return result, err
		}
	}
	return result, nil
}

// EnumerateSampleParallel splits n rollouts across workers goroutines, per
// §5: each worker owns a private RNG seeded distinctly from seed and a
// private EnumResult, reduced by componentwise merge once every worker
// finishes.
func EnumerateSampleParallel(ctx context.Context, variant GameVariant, pockets [][]Card, board, dead []Card, n, workers int, seed int64) (*EnumResult, error) {
	if len(pockets) == 0 || len(pockets) > MaxPlayers {
		return nil, ErrTooManyPlayers
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return NewEnumResult(len(pockets)), nil
	}
	per, remainder := n/workers, n%workers
	partials := make([]*EnumResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		count := per
		if w < remainder {
			count++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(w)))
			r, err := EnumerateSample(gctx, variant, pockets, board, dead, count, rng)
			partials[w] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := NewEnumResult(len(pockets))
	for _, r := range partials {
		if r != nil {
			total.Merge(r)
		}
	}
	return total, nil
}

// partialFisherYates draws k cards from deck uniformly without replacement,
// shuffling only the prefix actually consumed; deck is not mutated.
func partialFisherYates(rng *rand.Rand, deck []Card, k int) []Card {
	v := make([]Card, len(deck))
	copy(v, deck)
	n := len(v)
	for i := 0; i < k && i < n-1; i++ {
		j := i + rng.Intn(n-i)
		v[i], v[j] = v[j], v[i]
	}
	return v[:k]
}

// EnumerateHalton rolls out n quasi-random boards drawn via a Halton
// low-discrepancy sequence, offered as an alternative sampling mode with
// the same statistical target as [EnumerateSample]. Per the open question
// on quasi-random sampling scope, this is wired only for Hold'em.
func EnumerateHalton(ctx context.Context, variant GameVariant, pockets [][]Card, board, dead []Card, n int) (*EnumResult, error) {
	if variant != Holdem {
		return nil, ErrUnsupportedGameType
	}
	eval, boardSize, err := evaluatorFor(variant)
	if err != nil {
		return nil, err
	}
	if len(board) > boardSize {
		return nil, ErrUnsupportedBoardConfiguration
	}
	missing := boardSize - len(board)
	live, err := liveDeck(false, pockets, board, dead)
	if err != nil {
		return nil, err
	}
	result := NewEnumResult(len(pockets))
	for s := 1; s <= n; s++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		draw := haltonDraw(s, live, missing)
		full := append(append([]Card{}, board...), draw...)
		if err := tallyRollout(result, eval, pockets, full); err != nil {
			return result, err
		}
	}
	return result, nil
}

// halton returns the i'th term of the Halton sequence in the given prime
// base, in (0, 1).
func halton(i int, base int) float64 {
	f, r := 1.0, 0.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}

// haltonBases are the prime bases used for successive draw positions; reused
// cyclically when missing exceeds its length.
var haltonBases = [...]int{2, 3, 5, 7, 11}

// haltonDraw deterministically selects k distinct cards from deck using
// sample index s of a Halton sequence, one base per draw position.
func haltonDraw(s int, deck []Card, k int) []Card {
	v := make([]Card, len(deck))
	copy(v, deck)
	n := len(v)
	out := make([]Card, 0, k)
	for i := 0; i < k && i < n; i++ {
		base := haltonBases[i%len(haltonBases)]
		pos := i + int(halton(s, base)*float64(n-i))
		if pos >= n {
			pos = n - 1
		}
		v[i], v[pos] = v[pos], v[i]
		out = append(out, v[i])
	}
	return out
}
