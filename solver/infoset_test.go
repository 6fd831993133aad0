package solver

import (
	"math"
	"testing"
)

func TestInfosetNodeCurrentStrategyUniformWhenNoPositiveRegret(t *testing.T) {
	n := NewInfosetNode(3)
	strat := n.CurrentStrategy()
	for _, p := range strat {
		if math.Abs(p-1.0/3) > 1e-9 {
			t.Errorf("strategy = %v, want uniform thirds", strat)
		}
	}
}

func TestInfosetNodeCurrentStrategyIgnoresNegativeRegret(t *testing.T) {
	n := NewInfosetNode(2)
	n.Regrets[0] = 5
	n.Regrets[1] = -3
	strat := n.CurrentStrategy()
	if strat[0] != 1 || strat[1] != 0 {
		t.Errorf("strategy = %v, want [1, 0] (negative regret ignored)", strat)
	}
}

func TestInfosetNodeAverageStrategyNormalizesStrategySum(t *testing.T) {
	n := NewInfosetNode(2)
	n.StrategySum[0] = 30
	n.StrategySum[1] = 70
	avg := n.AverageStrategy()
	if math.Abs(avg[0]-0.3) > 1e-9 || math.Abs(avg[1]-0.7) > 1e-9 {
		t.Errorf("average strategy = %v, want [0.3, 0.7]", avg)
	}
}

func TestInfosetNodeResizeGrowsInPlacePreservingValues(t *testing.T) {
	n := NewInfosetNode(2)
	n.Regrets[0] = 1
	n.Regrets[1] = 2
	n.StrategySum[1] = 9
	n.Resize(4)
	if len(n.Regrets) != 4 || len(n.StrategySum) != 4 {
		t.Fatalf("Resize did not grow to 4 actions: %v %v", n.Regrets, n.StrategySum)
	}
	if n.Regrets[0] != 1 || n.Regrets[1] != 2 || n.StrategySum[1] != 9 {
		t.Errorf("Resize lost existing values: regrets=%v strategySum=%v", n.Regrets, n.StrategySum)
	}
}

func TestInfosetNodeResizeNeverShrinks(t *testing.T) {
	n := NewInfosetNode(4)
	n.Resize(2)
	if len(n.Regrets) != 4 {
		t.Errorf("Resize shrank the node from 4 to %d", len(n.Regrets))
	}
}
