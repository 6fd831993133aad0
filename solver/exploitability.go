package solver

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// PolicyFunc returns action probabilities for an infoset with numActions
// legal actions. Implementations need not normalize; [ExpectedUtility] and
// [BestResponseUtility] normalize defensively.
type PolicyFunc func(infoset string, numActions int) []float64

// ExpectedUtility computes policy's expected utility vector at the root of
// state, memoized by [GameTree.CacheKey].
func ExpectedUtility(state GameTree, policy PolicyFunc) []float64 {
	memo := make(map[string][]float64)
	return expectedUtilityMemo(state, policy, memo)
}

func expectedUtilityMemo(state GameTree, policy PolicyFunc, memo map[string][]float64) []float64 {
	if key, ok := state.CacheKey(); ok {
		if v, ok := memo[key]; ok {
			return v
		}
	}
	var out []float64
	switch state.NodeKind() {
	case KindTerminal:
		out = state.TerminalUtility()

	case KindChance:
		n := state.NumPlayers()
		out = make([]float64, n)
		for _, o := range state.ChanceOutcomes() {
			u := expectedUtilityMemo(o.Child, policy, memo)
			for i := 0; i < n; i++ {
				out[i] += o.Probability * u[i]
			}
		}

	default: // KindDecision
		actions := state.LegalActions()
		strategy := normalizeStrategy(policy(state.Infoset(), len(actions)), len(actions))
		n := state.NumPlayers()
		out = make([]float64, n)
		for i, action := range actions {
			u := expectedUtilityMemo(state.ApplyAction(action), policy, memo)
			for p := 0; p < n; p++ {
				out[p] += strategy[i] * u[p]
			}
		}
	}
	if key, ok := state.CacheKey(); ok {
		memo[key] = out
	}
	return out
}

// BestResponseUtility computes brPlayer's best-response utility against the
// other players playing policy: maximizing over brPlayer's own actions,
// mixing over opponents' per policy.
func BestResponseUtility(state GameTree, brPlayer int, policy PolicyFunc) float64 {
	memo := make(map[valueCacheKey]float64)
	return bestResponseUtilityMemo(state, brPlayer, policy, memo)
}

func bestResponseUtilityMemo(state GameTree, brPlayer int, policy PolicyFunc, memo map[valueCacheKey]float64) float64 {
	var key valueCacheKey
	var cacheable bool
	if k, ok := state.CacheKey(); ok {
		key, cacheable = valueCacheKey{brPlayer, k}, true
		if v, ok := memo[key]; ok {
			return v
		}
	}

	var out float64
	switch state.NodeKind() {
	case KindTerminal:
		out = state.TerminalUtility()[brPlayer]

	case KindChance:
		for _, o := range state.ChanceOutcomes() {
			out += o.Probability * bestResponseUtilityMemo(o.Child, brPlayer, policy, memo)
		}

	default: // KindDecision
		actions := state.LegalActions()
		if state.Player() == brPlayer {
			out = math.Inf(-1)
			for _, action := range actions {
				v := bestResponseUtilityMemo(state.ApplyAction(action), brPlayer, policy, memo)
				out = math.Max(out, v)
			}
		} else {
			strategy := normalizeStrategy(policy(state.Infoset(), len(actions)), len(actions))
			for i, action := range actions {
				out += strategy[i] * bestResponseUtilityMemo(state.ApplyAction(action), brPlayer, policy, memo)
			}
		}
	}

	if cacheable {
		memo[key] = out
	}
	return out
}

// ExploitabilityTwoPlayer computes the NashConv of policy in a 2-player
// game: (BR0 - U0) + (BR1 - U1).
func ExploitabilityTwoPlayer(state GameTree, policy PolicyFunc) float64 {
	u := ExpectedUtility(state, policy)
	br0 := BestResponseUtility(state, 0, policy)
	br1 := BestResponseUtility(state, 1, policy)
	return (br0 - u[0]) + (br1 - u[1])
}

// ExploitabilityNPlayer computes the NashConv of policy over all players:
// sum_i(BR_i - U_i). Per-player best responses are independent of one
// another (they read only state and policy) and are the embarrassingly
// parallel seam named in the concurrency model; this sequential
// implementation is the reference behavior a parallel dispatcher must
// match.
func ExploitabilityNPlayer(state GameTree, policy PolicyFunc) float64 {
	u := ExpectedUtility(state, policy)
	var sum float64
	for i := 0; i < state.NumPlayers(); i++ {
		sum += BestResponseUtility(state, i, policy) - u[i]
	}
	return sum
}

// ExploitabilityNPlayerParallel computes the same NashConv as
// [ExploitabilityNPlayer], dispatching each player's best response to its
// own goroutine. Per-player best responses touch no shared mutable state
// (each gets its own memoization map), making this the embarrassingly
// parallel seam named in the concurrency model.
func ExploitabilityNPlayerParallel(ctx context.Context, state GameTree, policy PolicyFunc) (float64, error) {
	n := state.NumPlayers()
	u := ExpectedUtility(state, policy)
	brs := make([]float64, n)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			brs[i] = BestResponseUtility(state, i, policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += brs[i] - u[i]
	}
	return sum, nil
}

func normalizeStrategy(s []float64, n int) []float64 {
	if n == 0 {
		return nil
	}
	if len(s) != n {
		return uniform(n)
	}
	out := make([]float64, n)
	var sum float64
	for i, v := range s {
		if v < 0 {
			v = 0
		}
		out[i] = v
		sum += v
	}
	if sum <= 0 {
		return uniform(n)
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	u := 1.0 / float64(n)
	for i := range out {
		out[i] = u
	}
	return out
}
