package cardrank

import (
	"context"
	"math/rand"
	"testing"
)

func TestEnumerateExhaustiveCompletedBoard(t *testing.T) {
	// S4 property: on a fully dealt board, there is exactly one rollout and
	// equities sum to 1.
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	board := Must("Ac 2s 3s 4s 5s")
	result, err := EnumerateExhaustive(context.Background(), Holdem, pockets, board, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Samples != 1 {
		t.Fatalf("expected exactly 1 sample, got: %d", result.Samples)
	}
	sum := result.Equity(0) + result.Equity(1)
	if sum < 0.999999 || sum > 1.000001 {
		t.Errorf("expected equities to sum to 1, got: %v", sum)
	}
}

func TestEnumerateExhaustiveRolloutCount(t *testing.T) {
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	board := Must("2s 3s 4s")
	result, err := EnumerateExhaustive(context.Background(), Holdem, pockets, board, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 52 - 4 (pockets) - 3 (board) = 45 live cards, choose 2 for the turn+river.
	const expected = 45 * 44 / 2
	if result.Samples != expected {
		t.Fatalf("expected %d rollouts, got: %d", expected, result.Samples)
	}
}

func TestEnumerateAAvsKKEquity(t *testing.T) {
	// S7: heads-up AA vs KK, equity should land comfortably in (0.75, 0.88).
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	rng := rand.New(rand.NewSource(1))
	result, err := EnumerateSample(context.Background(), Holdem, pockets, nil, nil, 20000, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq := result.Equity(0); eq <= 0.75 || eq >= 0.88 {
		t.Errorf("expected AA equity in (0.75, 0.88), got: %v", eq)
	}
}

func TestEnumerateMonteCarloConvergesToExhaustive(t *testing.T) {
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	board := Must("2s 3h 4d")
	exhaustive, err := EnumerateExhaustive(context.Background(), Holdem, pockets, board, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(7))
	sampled, err := EnumerateSample(context.Background(), Holdem, pockets, board, nil, 20000, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := exhaustive.Equity(0) - sampled.Equity(0)
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.05 {
		t.Errorf("expected sampled equity to be within 0.05 of exhaustive, got diff: %v", diff)
	}
}

func TestEnumerateTooManyPlayers(t *testing.T) {
	pockets := make([][]Card, MaxPlayers+1)
	if _, err := EnumerateExhaustive(context.Background(), Holdem, pockets, nil, nil); err != ErrTooManyPlayers {
		t.Errorf("expected ErrTooManyPlayers, got: %v", err)
	}
}

func TestEnumerateSampleParallelMatchesSequentialSampleCount(t *testing.T) {
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	result, err := EnumerateSampleParallel(context.Background(), Holdem, pockets, nil, nil, 8000, 4, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Samples != 8000 {
		t.Fatalf("expected 8000 samples split across workers, got: %d", result.Samples)
	}
	if eq := result.Equity(0); eq <= 0.75 || eq >= 0.88 {
		t.Errorf("expected AA equity in (0.75, 0.88), got: %v", eq)
	}
}

func TestEnumerateSampleParallelSingleWorkerMatchesBounds(t *testing.T) {
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	result, err := EnumerateSampleParallel(context.Background(), Holdem, pockets, nil, nil, 3, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Samples != 3 {
		t.Fatalf("expected 3 samples, got: %d", result.Samples)
	}
}

func TestEnumerateHaltonHoldem(t *testing.T) {
	pockets := [][]Card{Must("As Ad"), Must("Ks Kd")}
	result, err := EnumerateHalton(context.Background(), Holdem, pockets, nil, nil, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Samples != 5000 {
		t.Fatalf("expected 5000 samples, got: %d", result.Samples)
	}
	if eq := result.Equity(0); eq <= 0.70 || eq >= 0.92 {
		t.Errorf("expected AA equity roughly in range, got: %v", eq)
	}
}
