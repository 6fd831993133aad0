package games

import (
	"fmt"
	"math/rand"

	"github.com/rhalff/pokerkit/solver"

	"github.com/rhalff/pokerkit"
)

// Betting actions. A fixed small action-id encoding keeps infosets
// comparable across differing stack depths and bet sizes: every bet is
// "the minimum legal bet", every raise "the minimum legal raise", and
// players who want to commit their whole stack use AllIn directly.
const (
	ActFold = iota
	ActCheck
	ActCall
	ActBetMin
	ActRaiseMin
	ActAllIn
)

// PlayerStatus is a contender's state within a hand.
type PlayerStatus int

const (
	StatusActive PlayerStatus = iota
	StatusFolded
	StatusAllIn
)

// BettingConfig parameterizes a no-limit betting tree: a flat starting
// stack, blinds, and the number of betting streets (4 for Hold'em, Omaha
// and Short-Deck alike, which all deal the same 5-card board).
type BettingConfig struct {
	NumPlayers    int
	StartingStack int
	SmallBlind    int
	BigBlind      int
	NumStreets    int
	// MinBet is the flat bet/raise increment used for both ActBetMin and
	// ActRaiseMin; defaults to BigBlind when zero.
	MinBet int
}

func (c BettingConfig) minBet() int {
	if c.MinBet > 0 {
		return c.MinBet
	}
	return c.BigBlind
}

// handState is the betting tree's mutable state. Every action clones it;
// card deals are never modeled here; showdown strength for every player is
// precomputed externally (eg, via [SampleBettingGame], or by a caller
// supplying its own showdownStrengths to [NewBettingGameTree] directly) and
// carried alongside in [BettingGameTree].
type handState struct {
	cfg            BettingConfig
	street         int
	toAct          int
	currentBet     int
	committedRound []int
	committedTotal []int
	stacks         []int
	status         []PlayerStatus
	acted          map[int]bool
	terminal       bool
}

func newHandState(cfg BettingConfig, dealer int) *handState {
	n := cfg.NumPlayers
	s := &handState{
		cfg:            cfg,
		committedRound: make([]int, n),
		committedTotal: make([]int, n),
		stacks:         make([]int, n),
		status:         make([]PlayerStatus, n),
		acted:          make(map[int]bool),
	}
	for i := range s.stacks {
		s.stacks[i] = cfg.StartingStack
	}
	sb, bb := (dealer+1)%n, (dealer+2)%n
	if n == 2 {
		sb, bb = dealer, (dealer+1)%n
	}
	s.postBlind(sb, cfg.SmallBlind)
	s.postBlind(bb, cfg.BigBlind)
	s.currentBet = cfg.BigBlind
	s.toAct = nextActive(s.status, bb, n)
	s.checkTerminal()
	return s
}

func (s *handState) postBlind(p, amount int) {
	if amount > s.stacks[p] {
		amount = s.stacks[p]
	}
	s.committedRound[p] += amount
	s.committedTotal[p] += amount
	s.stacks[p] -= amount
	if s.stacks[p] == 0 {
		s.status[p] = StatusAllIn
	}
}

func (s *handState) clone() *handState {
	next := &handState{
		cfg:            s.cfg,
		street:         s.street,
		toAct:          s.toAct,
		currentBet:     s.currentBet,
		committedRound: append([]int{}, s.committedRound...),
		committedTotal: append([]int{}, s.committedTotal...),
		stacks:         append([]int{}, s.stacks...),
		status:         append([]PlayerStatus{}, s.status...),
		acted:          make(map[int]bool, len(s.acted)),
		terminal:       s.terminal,
	}
	for p, v := range s.acted {
		next.acted[p] = v
	}
	return next
}

func (s *handState) facingAmount(p int) int {
	return s.currentBet - s.committedRound[p]
}

func (s *handState) legalActions() []int {
	if s.terminal || s.status[s.toAct] != StatusActive {
		return nil
	}
	p := s.toAct
	facing := s.facingAmount(p)
	var actions []int
	switch {
	case facing > 0:
		actions = append(actions, ActFold, ActCall)
		if s.stacks[p] > facing {
			actions = append(actions, ActRaiseMin)
		}
	default:
		actions = append(actions, ActCheck)
		if s.stacks[p] > 0 {
			actions = append(actions, ActBetMin)
		}
	}
	if s.stacks[p] > 0 {
		actions = append(actions, ActAllIn)
	}
	return actions
}

func (s *handState) apply(action int) *handState {
	next := s.clone()
	p := next.toAct
	raised := false
	switch action {
	case ActFold:
		next.status[p] = StatusFolded
	case ActCheck:
		// no chip movement
	case ActCall:
		amt := min(next.facingAmount(p), next.stacks[p])
		next.commit(p, amt)
	case ActBetMin:
		amt := min(next.cfg.minBet(), next.stacks[p])
		next.commit(p, amt)
		next.currentBet = next.committedRound[p]
		raised = true
	case ActRaiseMin:
		target := next.currentBet + next.cfg.minBet()
		amt := min(target-next.committedRound[p], next.stacks[p])
		next.commit(p, amt)
		next.currentBet = next.committedRound[p]
		raised = true
	case ActAllIn:
		amt := next.stacks[p]
		next.commit(p, amt)
		if next.committedRound[p] > next.currentBet {
			next.currentBet = next.committedRound[p]
			raised = true
		}
	}
	if raised {
		next.acted = map[int]bool{p: true}
	} else {
		next.acted[p] = true
	}
	next.advance(p)
	return next
}

func (s *handState) commit(p, amount int) {
	s.committedRound[p] += amount
	s.committedTotal[p] += amount
	s.stacks[p] -= amount
	if s.stacks[p] == 0 && s.status[p] == StatusActive {
		s.status[p] = StatusAllIn
	}
}

// advance moves the action to the next decidable player, closes the
// current betting round into the next street when every active player has
// matched currentBet and acted since the last bet or raise, and marks the
// hand terminal once no further decisions remain.
func (s *handState) advance(from int) {
	if s.checkTerminal() {
		return
	}
	if s.roundClosed() {
		if countDecidable(s.status) <= 1 {
			// nobody left who both can and needs to act further.
			s.terminal = true
			return
		}
		s.nextStreet()
		s.checkTerminal()
		return
	}
	n := nextActive(s.status, from, len(s.status))
	if n == -1 {
		s.terminal = true
		return
	}
	s.toAct = n
}

func (s *handState) roundClosed() bool {
	for p, st := range s.status {
		if st == StatusActive && (!s.acted[p] || s.committedRound[p] != s.currentBet) {
			return false
		}
	}
	return true
}

func (s *handState) nextStreet() {
	s.street++
	s.currentBet = 0
	for i := range s.committedRound {
		s.committedRound[i] = 0
	}
	s.acted = make(map[int]bool)
	s.toAct = nextActive(s.status, len(s.status)-1, len(s.status))
}

// checkTerminal sets terminal and returns it whenever the hand cannot
// continue: at most one contender remains, or every street has been played
// out. A lone remaining decidable player still gets to act (see advance);
// that case is handled after its round closes, not here.
func (s *handState) checkTerminal() bool {
	if countContenders(s.status) <= 1 {
		s.terminal = true
	} else if s.street >= s.cfg.NumStreets {
		s.terminal = true
	}
	return s.terminal
}

func nextActive(status []PlayerStatus, from, n int) int {
	for i := 1; i <= n; i++ {
		p := (from + i) % n
		if status[p] == StatusActive {
			return p
		}
	}
	return -1
}

func countContenders(status []PlayerStatus) int {
	n := 0
	for _, st := range status {
		if st != StatusFolded {
			n++
		}
	}
	return n
}

func countDecidable(status []PlayerStatus) int {
	n := 0
	for _, st := range status {
		if st == StatusActive {
			n++
		}
	}
	return n
}

// BettingGameTree is a generic multi-street no-limit betting tree over any
// cardrank variant. Card deals are never part of the tree itself:
// showdownStrengths holds one precomputed showdown value per player,
// supplied either directly or via [SampleBettingGame]'s real deal-and-
// evaluate step, so ChanceOutcomes is always empty and the tree is decision
// and terminal nodes only.
type BettingGameTree struct {
	state             *handState
	showdownStrengths []uint32
}

// NewBettingGameTree builds a betting tree rooted at the first action after
// blinds are posted, given one precomputed showdown strength per player.
func NewBettingGameTree(cfg BettingConfig, dealer int, showdownStrengths []uint32) *BettingGameTree {
	return &BettingGameTree{
		state:             newHandState(cfg, dealer),
		showdownStrengths: showdownStrengths,
	}
}

// SampleBettingGame deals a real showdown for variant from deck — one
// pocket per player plus a shared board, via [cardrank.Deck.DealVariant] —
// and evaluates each player's showdown strength through the matching
// cardrank evaluator (EvaluateHoldem, EvaluateOmahaHi, or
// EvaluateShortDeckHand), rather than requiring the caller to invent a
// synthetic showdownStrengths array by hand. Mirrors variant_tree.rs's
// ChanceDeal node, which wraps a betting_tree.rs game in exactly this real
// deal-then-evaluate step before delegating the rest to the betting tree.
func SampleBettingGame(rng *rand.Rand, cfg BettingConfig, dealer int, variant cardrank.GameVariant) (*BettingGameTree, error) {
	var deck *cardrank.Deck
	switch variant {
	case cardrank.Holdem, cardrank.OmahaGame:
		deck = cardrank.NewDeck()
	case cardrank.ShortDeck:
		deck = cardrank.NewShortDeck()
	default:
		return nil, cardrank.ErrUnsupportedGameType
	}
	deck.Shuffle(rng.Shuffle)
	pockets, board, err := deck.DealVariant(variant, cfg.NumPlayers)
	if err != nil {
		return nil, err
	}
	strengths := make([]uint32, cfg.NumPlayers)
	for p, pocket := range pockets {
		var v cardrank.HandValue
		switch variant {
		case cardrank.Holdem:
			v, err = cardrank.EvaluateHoldem(pocket, board)
		case cardrank.OmahaGame:
			v, err = cardrank.EvaluateOmahaHi(pocket, board)
		case cardrank.ShortDeck:
			v, err = cardrank.EvaluateShortDeckHand(pocket, board)
		}
		if err != nil {
			return nil, err
		}
		strengths[p] = uint32(v)
	}
	return NewBettingGameTree(cfg, dealer, strengths), nil
}

func (g *BettingGameTree) strength(p int) uint32 {
	if p < 0 || p >= len(g.showdownStrengths) {
		return 0
	}
	return g.showdownStrengths[p]
}

func (g *BettingGameTree) NumPlayers() int { return g.state.cfg.NumPlayers }

func (g *BettingGameTree) NodeKind() solver.Kind {
	if g.state.terminal {
		return solver.KindTerminal
	}
	return solver.KindDecision
}

func (g *BettingGameTree) Player() int {
	if g.state.terminal {
		return -1
	}
	return g.state.toAct
}

func (g *BettingGameTree) Infoset() string {
	p := g.state.toAct
	return fmt.Sprintf("bet:p%d:str%d:st%d:cb%d:f%d:cr%v:stacks%v",
		p, g.strength(p), g.state.street, g.state.currentBet, g.state.facingAmount(p),
		g.state.committedRound, g.state.stacks)
}

func (g *BettingGameTree) LegalActions() []int { return g.state.legalActions() }

func (g *BettingGameTree) ApplyAction(action int) solver.GameTree {
	return &BettingGameTree{state: g.state.apply(action), showdownStrengths: g.showdownStrengths}
}

func (g *BettingGameTree) ChanceOutcomes() []solver.ChanceOutcome { return nil }

// terminalChipUtility splits the pot among non-folded contenders by maximum
// showdown strength (ties split evenly, remainder to the first tied
// winner in player order), returning each player's net chip gain or loss.
func (g *BettingGameTree) terminalChipUtility() []float64 {
	n := g.state.cfg.NumPlayers
	payouts := make([]int, n)
	pot := 0
	for _, c := range g.state.committedTotal {
		pot += c
	}
	var contenders []int
	for i, st := range g.state.status {
		if st != StatusFolded {
			contenders = append(contenders, i)
		}
	}
	if len(contenders) == 0 {
		return make([]float64, n)
	}
	if len(contenders) == 1 {
		payouts[contenders[0]] = pot
	} else {
		maxStrength := uint32(0)
		for _, i := range contenders {
			if s := g.strength(i); s > maxStrength {
				maxStrength = s
			}
		}
		var winners []int
		for _, i := range contenders {
			if g.strength(i) == maxStrength {
				winners = append(winners, i)
			}
		}
		share := pot / len(winners)
		rem := pot % len(winners)
		for k, i := range winners {
			payouts[i] += share
			if k == 0 {
				payouts[i] += rem
			}
		}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(payouts[i] - g.state.committedTotal[i])
	}
	return out
}

func (g *BettingGameTree) TerminalUtility() []float64 {
	if g.state.terminal {
		return g.terminalChipUtility()
	}
	return make([]float64, g.state.cfg.NumPlayers)
}

func (g *BettingGameTree) stateKey() string {
	return fmt.Sprintf("bt:st%d:to%d:cb%d:cr%v:ct%v:s%v:stk%v:term%v",
		g.state.street, g.state.toAct, g.state.currentBet, g.state.committedRound,
		g.state.committedTotal, g.state.status, g.state.stacks, g.state.terminal)
}

func (g *BettingGameTree) CacheKey() (string, bool) { return g.stateKey(), true }

func (g *BettingGameTree) SubtreeActionCacheKey() (string, bool) { return g.CacheKey() }

func (g *BettingGameTree) SubtreeValueCacheKey(updatePlayer int) (string, bool) {
	if !g.state.terminal {
		return "", false
	}
	return g.CacheKey()
}
