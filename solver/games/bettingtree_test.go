package games

import (
	"math/rand"
	"testing"

	"github.com/rhalff/pokerkit/solver"

	"github.com/rhalff/pokerkit"
)

func headsUpConfig() BettingConfig {
	return BettingConfig{
		NumPlayers:    2,
		StartingStack: 100,
		SmallBlind:    1,
		BigBlind:      2,
		NumStreets:    4,
	}
}

func TestBettingGameTreeRootIsDecisionForSmallBlind(t *testing.T) {
	g := NewBettingGameTree(headsUpConfig(), 0, []uint32{3, 1})
	if g.NodeKind() != solver.KindDecision {
		t.Fatalf("NodeKind() = %v, want Decision", g.NodeKind())
	}
	if g.Player() != 0 {
		t.Errorf("Player() = %d, want 0 (small blind acts first heads-up)", g.Player())
	}
}

func TestBettingGameTreeImmediateFoldAwardsBlinds(t *testing.T) {
	g := NewBettingGameTree(headsUpConfig(), 0, []uint32{3, 1})
	term := g.ApplyAction(ActFold).(*BettingGameTree)
	if term.NodeKind() != solver.KindTerminal {
		t.Fatal("fold should end a heads-up hand")
	}
	u := term.TerminalUtility()
	if u[0] != -1 || u[1] != 1 {
		t.Errorf("fold utility = %v, want [-1, 1] (small blind forfeits its 1-chip blind)", u)
	}
}

func TestBettingGameTreeBigBlindOptionThenCheckClosesPreflop(t *testing.T) {
	g := NewBettingGameTree(headsUpConfig(), 0, []uint32{3, 1})
	afterCall := g.ApplyAction(ActCall).(*BettingGameTree)
	if afterCall.NodeKind() != solver.KindDecision || afterCall.Player() != 1 {
		t.Fatalf("after the small blind calls, the big blind should still act; got kind=%v player=%d",
			afterCall.NodeKind(), afterCall.Player())
	}
	afterCheck := afterCall.ApplyAction(ActCheck).(*BettingGameTree)
	if afterCheck.state.street != 1 {
		t.Errorf("street = %d, want 1 after preflop action closes", afterCheck.state.street)
	}
	if afterCheck.state.currentBet != 0 {
		t.Errorf("currentBet = %d, want reset to 0 on the new street", afterCheck.state.currentBet)
	}
}

func TestBettingGameTreeAllInShowdownSplitsByStrength(t *testing.T) {
	cfg := BettingConfig{NumPlayers: 2, StartingStack: 10, SmallBlind: 1, BigBlind: 2, NumStreets: 4}
	g := NewBettingGameTree(cfg, 0, []uint32{5, 1})
	afterShove := g.ApplyAction(ActAllIn).(*BettingGameTree)
	term := afterShove.ApplyAction(ActCall).(*BettingGameTree)
	if term.NodeKind() != solver.KindTerminal {
		t.Fatal("both players all-in should be terminal with no streets left to act on")
	}
	u := term.TerminalUtility()
	if u[0] <= 0 || u[1] >= 0 {
		t.Errorf("showdown utility = %v, want player 0 (higher strength) to win the pot", u)
	}
	if u[0] != -u[1] {
		t.Errorf("heads-up showdown utility = %v, want zero-sum", u)
	}
}

func TestBettingGameTreeLegalActionsExcludeRaiseWhenShortStacked(t *testing.T) {
	cfg := BettingConfig{NumPlayers: 2, StartingStack: 2, SmallBlind: 1, BigBlind: 2, NumStreets: 4}
	g := NewBettingGameTree(cfg, 0, []uint32{1, 1})
	for _, a := range g.LegalActions() {
		if a == ActRaiseMin {
			t.Error("a player facing a bet with no chips beyond the call should not have a legal min-raise")
		}
	}
}

func TestSampleBettingGameDealsRealStrengthsForEachVariant(t *testing.T) {
	for _, variant := range []cardrank.GameVariant{cardrank.Holdem, cardrank.OmahaGame, cardrank.ShortDeck} {
		rng := rand.New(rand.NewSource(1))
		cfg := BettingConfig{NumPlayers: 3, StartingStack: 100, SmallBlind: 1, BigBlind: 2, NumStreets: 4}
		g, err := SampleBettingGame(rng, cfg, 0, variant)
		if err != nil {
			t.Fatalf("variant %s: SampleBettingGame: %v", variant, err)
		}
		if len(g.showdownStrengths) != cfg.NumPlayers {
			t.Fatalf("variant %s: got %d showdown strengths, want %d", variant, len(g.showdownStrengths), cfg.NumPlayers)
		}
		for p, s := range g.showdownStrengths {
			if s == 0 {
				t.Errorf("variant %s: player %d has a zero (unevaluated) showdown strength", variant, p)
			}
		}
		if g.NodeKind() != solver.KindDecision {
			t.Errorf("variant %s: root NodeKind() = %v, want Decision", variant, g.NodeKind())
		}
	}
}

func TestSampleBettingGameRejectsUnsupportedVariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := headsUpConfig()
	if _, err := SampleBettingGame(rng, cfg, 0, cardrank.Stud7); err == nil {
		t.Error("expected an error for a variant SampleBettingGame cannot deal")
	}
}

func TestBettingGameTreeCacheKeyStableAcrossEqualStates(t *testing.T) {
	g1 := NewBettingGameTree(headsUpConfig(), 0, []uint32{3, 1})
	g2 := NewBettingGameTree(headsUpConfig(), 0, []uint32{3, 1})
	k1, ok1 := g1.CacheKey()
	k2, ok2 := g2.CacheKey()
	if !ok1 || !ok2 || k1 != k2 {
		t.Errorf("two freshly built identical trees should share a cache key, got %q vs %q", k1, k2)
	}
}
