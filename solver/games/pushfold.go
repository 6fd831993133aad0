package games

import (
	"fmt"
	"math/rand"

	"github.com/rhalff/pokerkit/solver"

	"github.com/rhalff/pokerkit"
)

// Push-fold actions.
const (
	PushFoldFold = 0
	PushFoldShove = 1
)

// PushFoldState is a toy heads-up push-fold game: player 0 folds or shoves;
// on a shove, player 1 folds or calls; on a call, the precomputed
// HandValues decide the pot. Showdown strength is computed once, outside
// the tree, so the tree itself carries no chance node.
type PushFoldState struct {
	p0Value cardrank.HandValue
	p1Value cardrank.HandValue
	history []int
	player  int
}

// NewPushFold builds a push-fold game instance from two already-evaluated
// HandValues (eg, from [cardrank.EvaluateHoldem] against a fixed board).
func NewPushFold(p0Value, p1Value cardrank.HandValue) *PushFoldState {
	return &PushFoldState{p0Value: p0Value, p1Value: p1Value, player: 0}
}

// SamplePushFold deals a random heads-up Hold'em showdown from deck and
// returns the resulting push-fold game instance, mirroring how a caller
// would draw many hand matchups to train an aggregate push-fold policy.
func SamplePushFold(rng *rand.Rand, deck *cardrank.Deck) (*PushFoldState, error) {
	deck.Shuffle(rng.Shuffle)
	pockets, board := deck.Holdem(2)
	p0, err := cardrank.EvaluateHoldem(pockets[0], board)
	if err != nil {
		return nil, err
	}
	p1, err := cardrank.EvaluateHoldem(pockets[1], board)
	if err != nil {
		return nil, err
	}
	return NewPushFold(p0, p1), nil
}

func (s *PushFoldState) NumPlayers() int { return 2 }

func (s *PushFoldState) NodeKind() solver.Kind {
	if s.isTerminal() {
		return solver.KindTerminal
	}
	return solver.KindDecision
}

func (s *PushFoldState) Player() int { return s.player }

func (s *PushFoldState) Infoset() string {
	return fmt.Sprintf("pf:p%d:%v", s.player, s.history)
}

func (s *PushFoldState) LegalActions() []int { return []int{PushFoldFold, PushFoldShove} }

func (s *PushFoldState) ApplyAction(action int) solver.GameTree {
	next := &PushFoldState{p0Value: s.p0Value, p1Value: s.p1Value, player: 1 - s.player}
	next.history = append(append([]int{}, s.history...), action)
	return next
}

func (s *PushFoldState) ChanceOutcomes() []solver.ChanceOutcome { return nil }

func (s *PushFoldState) isTerminal() bool {
	switch {
	case len(s.history) == 1 && s.history[0] == PushFoldFold:
		return true
	case len(s.history) == 2:
		return true
	}
	return false
}

func (s *PushFoldState) TerminalUtility() []float64 {
	h := s.history
	switch {
	case len(h) == 1 && h[0] == PushFoldFold:
		// player 0 folds immediately, forfeiting the small blind.
		return []float64{-0.5, 0.5}
	case len(h) == 2 && h[1] == PushFoldFold:
		// player 1 folds to the shove.
		return []float64{1, -1}
	case len(h) == 2 && h[1] == PushFoldShove:
		switch {
		case s.p0Value > s.p1Value:
			return []float64{2, -2}
		case s.p1Value > s.p0Value:
			return []float64{-2, 2}
		default:
			return []float64{0, 0}
		}
	}
	return []float64{0, 0}
}

func (s *PushFoldState) CacheKey() (string, bool) {
	return fmt.Sprintf("pf:%d:%d:%v", s.p0Value, s.p1Value, s.history), true
}

func (s *PushFoldState) SubtreeActionCacheKey() (string, bool) { return s.CacheKey() }

func (s *PushFoldState) SubtreeValueCacheKey(updatePlayer int) (string, bool) {
	if !s.isTerminal() {
		return "", false
	}
	key, _ := s.CacheKey()
	return key, true
}
