package solver_test

import (
	"testing"

	"github.com/rhalff/pokerkit/solver"
	"github.com/rhalff/pokerkit/solver/games"
)

// TestSolver_KuhnPokerConverges trains CFR+ on Kuhn poker and checks the
// two textbook equilibrium properties: a Jack should rarely open-bet, and
// a Queen acting first should almost always check rather than bet (Queen
// beats Jack but loses to King, so betting it gains nothing).
func TestSolver_KuhnPokerConverges(t *testing.T) {
	root := games.NewKuhnRoot()
	s := solver.NewSolver(root)
	s.Train(100000)

	jackBet := s.AverageStrategy("J:", 2)
	if betProb := jackBet[games.KuhnBet]; betProb > 0.45 {
		t.Errorf("Jack first-to-act bet frequency = %.3f, want <= 0.45", betProb)
	}

	queenCheck := s.AverageStrategy("Q:", 2)
	if checkProb := queenCheck[games.KuhnPass]; checkProb < 0.90 {
		t.Errorf("Queen first-to-act check frequency = %.3f, want >= 0.90", checkProb)
	}
}

func TestSolver_AverageStrategyUniformForUnvisitedInfoset(t *testing.T) {
	s := solver.NewSolver(games.NewKuhnRoot())
	strat := s.AverageStrategy("never-visited", 3)
	for _, p := range strat {
		if p < 0.333 || p > 0.334 {
			t.Errorf("unvisited infoset strategy = %v, want uniform thirds", strat)
		}
	}
}

func TestSolver_TrainWithExploitabilityRecordsCheckpoints(t *testing.T) {
	s := solver.NewSolver(games.NewKuhnRoot())
	points := s.TrainWithExploitability(20, 5)
	if len(points) != 4 {
		t.Fatalf("got %d checkpoints, want 4 (one every 5 of 20 iterations)", len(points))
	}
	if points[len(points)-1].Iteration != 20 {
		t.Errorf("last checkpoint iteration = %d, want 20", points[len(points)-1].Iteration)
	}
}

func TestSolver_DiscountedConfigRunsWithoutPanicking(t *testing.T) {
	s := solver.NewSolver(games.NewKuhnRoot())
	s.Config.Discounted = true
	s.Config.Alpha, s.Config.Beta, s.Config.Gamma = 1.5, 0, 2
	s.Train(500)
	if len(s.Table) == 0 {
		t.Error("expected at least one infoset to be visited")
	}
}
