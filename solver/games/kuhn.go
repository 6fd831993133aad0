// Package games provides concrete [solver.GameTree] implementations: Kuhn
// poker, a heads-up Hold'em push-fold toy game, and a generic multi-street
// no-limit betting tree over the cardrank evaluator's variants.
package games

import (
	"fmt"
	"strings"

	"github.com/rhalff/pokerkit/solver"
)

// Kuhn actions.
const (
	KuhnPass = 0
	KuhnBet  = 1
)

// kuhnCards are the three Kuhn-poker ranks, low to high.
var kuhnCards = [3]string{"J", "Q", "K"}

// kuhnDeals enumerates every ordered 2-of-3 card deal, each equally likely.
var kuhnDeals = func() [][2]int {
	var deals [][2]int
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			if a != b {
				deals = append(deals, [2]int{a, b})
			}
		}
	}
	return deals
}()

// KuhnRoot is the chance node at the start of a Kuhn poker hand: one of six
// equally likely card deals to the two players.
type KuhnRoot struct{}

// NewKuhnRoot returns the root of a Kuhn poker game tree.
func NewKuhnRoot() *KuhnRoot { return &KuhnRoot{} }

func (KuhnRoot) NumPlayers() int        { return 2 }
func (KuhnRoot) NodeKind() solver.Kind  { return solver.KindChance }
func (KuhnRoot) Player() int            { return -1 }
func (KuhnRoot) Infoset() string        { return "" }
func (KuhnRoot) LegalActions() []int    { return nil }
func (KuhnRoot) TerminalUtility() []float64 {
	return nil
}
func (KuhnRoot) ApplyAction(int) solver.GameTree { return nil }

func (KuhnRoot) ChanceOutcomes() []solver.ChanceOutcome {
	p := 1.0 / float64(len(kuhnDeals))
	outcomes := make([]solver.ChanceOutcome, len(kuhnDeals))
	for i, deal := range kuhnDeals {
		outcomes[i] = solver.ChanceOutcome{
			Probability: p,
			Child: &KuhnState{
				cards:   deal,
				history: nil,
				player:  0,
			},
		}
	}
	return outcomes
}

func (KuhnRoot) CacheKey() (string, bool)                         { return "kuhn:root", true }
func (KuhnRoot) SubtreeActionCacheKey() (string, bool)            { return "kuhn:root", true }
func (KuhnRoot) SubtreeValueCacheKey(int) (string, bool)          { return "", false }

// KuhnState is a Kuhn poker decision or terminal node, after the initial
// deal. history records actions ([KuhnPass]/[KuhnBet]) in play order.
type KuhnState struct {
	cards   [2]int
	history []int
	player  int
}

func (s *KuhnState) NumPlayers() int { return 2 }

func (s *KuhnState) NodeKind() solver.Kind {
	if s.isTerminal() {
		return solver.KindTerminal
	}
	return solver.KindDecision
}

func (s *KuhnState) Player() int { return s.player }

func (s *KuhnState) Infoset() string {
	var hist strings.Builder
	for _, a := range s.history {
		if a == KuhnPass {
			hist.WriteByte('P')
		} else {
			hist.WriteByte('B')
		}
	}
	return fmt.Sprintf("%s:%s", kuhnCards[s.cards[s.player]], hist.String())
}

func (s *KuhnState) LegalActions() []int { return []int{KuhnPass, KuhnBet} }

func (s *KuhnState) ApplyAction(action int) solver.GameTree {
	next := &KuhnState{cards: s.cards, player: 1 - s.player}
	next.history = append(append([]int{}, s.history...), action)
	return next
}

func (s *KuhnState) ChanceOutcomes() []solver.ChanceOutcome { return nil }

// isTerminal reports whether history has reached one of Kuhn poker's five
// terminal action sequences: pass-pass, bet-pass, bet-bet, pass-bet-pass,
// pass-bet-bet.
func (s *KuhnState) isTerminal() bool {
	h := s.history
	switch len(h) {
	case 2:
		return !(h[0] == KuhnPass && h[1] == KuhnBet)
	case 3:
		return h[1] == KuhnBet
	default:
		return false
	}
}

func (s *KuhnState) TerminalUtility() []float64 {
	h := s.history
	higher := s.cards[0] > s.cards[1]
	win := func(amount float64) []float64 {
		if higher {
			return []float64{amount, -amount}
		}
		return []float64{-amount, amount}
	}
	switch {
	case len(h) == 2 && h[0] == KuhnPass && h[1] == KuhnPass:
		return win(1)
	case len(h) == 2 && h[0] == KuhnBet && h[1] == KuhnPass:
		return []float64{1, -1}
	case len(h) == 2 && h[0] == KuhnBet && h[1] == KuhnBet:
		return win(2)
	case len(h) == 3 && h[1] == KuhnBet && h[2] == KuhnPass:
		return []float64{-1, 1}
	case len(h) == 3 && h[1] == KuhnBet && h[2] == KuhnBet:
		return win(2)
	}
	return []float64{0, 0}
}

func (s *KuhnState) CacheKey() (string, bool) {
	return fmt.Sprintf("kuhn:%d:%d:%v", s.cards[0], s.cards[1], s.history), true
}

func (s *KuhnState) SubtreeActionCacheKey() (string, bool) { return s.CacheKey() }

func (s *KuhnState) SubtreeValueCacheKey(updatePlayer int) (string, bool) {
	if !s.isTerminal() {
		return "", false
	}
	key, _ := s.CacheKey()
	return key, true
}
