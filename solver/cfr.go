package solver

import (
	"math"

	"github.com/charmbracelet/log"
)

// Config toggles the CFR+ engine's caching and averaging behavior, per §4.G.
// The zero value is not a usable config; use [DefaultConfig].
type Config struct {
	// LinearAveraging weights each iteration's contribution to
	// StrategySum by the iteration index rather than uniformly.
	LinearAveraging bool
	// CacheOpponentStrategies memoizes an opponent's current strategy
	// within one traversal, since it is visited identically by every
	// update-player's recursion.
	CacheOpponentStrategies bool
	// CacheSubtreeActions memoizes ApplyAction/ChanceOutcomes results
	// within one traversal, keyed by SubtreeActionCacheKey.
	CacheSubtreeActions bool
	// CacheSubtreeValues memoizes a subtree's expected utility for the
	// current update-player within one traversal, keyed by
	// SubtreeValueCacheKey. Unsafe across iterations, so the cache is
	// discarded at the end of every traversal.
	CacheSubtreeValues bool

	// Alpha, Beta, and Gamma are the discounted-CFR exponents: positive
	// regrets are scaled by t^Alpha/(t^Alpha+1), negative regrets by
	// t^Beta/(t^Beta+1), and StrategySum contributions by
	// (t/(t+1))^Gamma, for iteration t. CFR+ is the limit Alpha→∞,
	// Beta=0, Gamma=0, which this package implements directly (via
	// regret clamping) rather than through the discount formula; set
	// these only to run the general discounted-CFR family.
	Alpha, Beta, Gamma float64
	// Discounted enables the (Alpha, Beta, Gamma) discount schedule
	// instead of plain CFR+ clamp-to-zero regret updates.
	Discounted bool

	// Logger receives a line per checkpoint from
	// [Solver.TrainWithExploitability]; nil (the default) disables
	// logging entirely.
	Logger *log.Logger
}

// DefaultConfig returns the CFR+ configuration: linear averaging, opponent
// strategy and subtree action caching enabled, subtree value caching off
// (it trades memory for speed and is unsafe to leave on across very deep
// trees without per-traversal reset discipline).
func DefaultConfig() Config {
	return Config{
		LinearAveraging:         true,
		CacheOpponentStrategies: true,
		CacheSubtreeActions:     true,
	}
}

// ExploitabilityPoint is one checkpoint of a training run's NashConv.
type ExploitabilityPoint struct {
	Iteration      int
	Exploitability float64
}

// Solver trains a CFR+-family policy over a fixed game tree root.
type Solver struct {
	Root      GameTree
	Iteration int
	Table     map[string]*InfosetNode
	Config    Config
}

// NewSolver creates a solver over root using [DefaultConfig].
func NewSolver(root GameTree) *Solver {
	return &Solver{
		Root:   root,
		Table:  make(map[string]*InfosetNode),
		Config: DefaultConfig(),
	}
}

// traversalCaches are scoped to a single traverse() call tree (one
// update-player within one iteration) and discarded afterward, per the
// ownership rule in the design notes. All four caches (opponent strategies,
// actions, chance outcomes and values) are rebuilt for every traversal;
// none is retained across iterations.
type traversalCaches struct {
	strategy map[string][]float64
	action   map[actionCacheKey]GameTree
	chance   map[string][]ChanceOutcome
	value    map[valueCacheKey]float64
}

type actionCacheKey struct {
	base   string
	action int
}

type valueCacheKey struct {
	player int
	base   string
}

func newTraversalCaches() *traversalCaches {
	return &traversalCaches{
		strategy: make(map[string][]float64),
		action:   make(map[actionCacheKey]GameTree),
		chance:   make(map[string][]ChanceOutcome),
		value:    make(map[valueCacheKey]float64),
	}
}

// Train runs iterations full CFR+ iterations, each updating every player in
// player-index order per §5's ordering guarantee.
func (s *Solver) Train(iterations int) {
	for i := 0; i < iterations; i++ {
		s.Iteration++
		s.runIteration()
	}
}

func (s *Solver) runIteration() {
	n := s.Root.NumPlayers()
	for p := 0; p < n; p++ {
		reach := make([]float64, n)
		for i := range reach {
			reach[i] = 1
		}
		caches := newTraversalCaches()
		s.traverse(s.Root, p, reach, caches)
	}
}

// traverse implements the recurrence of §4.G: a single recursive pass
// updating regrets and strategy sums for updatePlayer, returning that
// player's utility at state.
func (s *Solver) traverse(state GameTree, updatePlayer int, reach []float64, caches *traversalCaches) float64 {
	if s.Config.CacheSubtreeValues {
		if key, ok := state.SubtreeValueCacheKey(updatePlayer); ok {
			if v, ok := caches.value[valueCacheKey{updatePlayer, key}]; ok {
				return v
			}
		}
	}

	switch state.NodeKind() {
	case KindTerminal:
		return state.TerminalUtility()[updatePlayer]

	case KindChance:
		outcomes := s.chanceOutcomes(state, caches)
		var ev float64
		for _, o := range outcomes {
			ev += o.Probability * s.traverse(o.Child, updatePlayer, reach, caches)
		}
		s.storeValue(state, updatePlayer, caches, ev)
		return ev

	default: // KindDecision
		return s.traverseDecision(state, updatePlayer, reach, caches)
	}
}

func (s *Solver) chanceOutcomes(state GameTree, caches *traversalCaches) []ChanceOutcome {
	if !s.Config.CacheSubtreeActions {
		return state.ChanceOutcomes()
	}
	key, ok := state.SubtreeActionCacheKey()
	if !ok {
		return state.ChanceOutcomes()
	}
	if v, ok := caches.chance[key]; ok {
		return v
	}
	v := state.ChanceOutcomes()
	caches.chance[key] = v
	return v
}

func (s *Solver) storeValue(state GameTree, updatePlayer int, caches *traversalCaches, value float64) {
	if !s.Config.CacheSubtreeValues {
		return
	}
	if key, ok := state.SubtreeValueCacheKey(updatePlayer); ok {
		caches.value[valueCacheKey{updatePlayer, key}] = value
	}
}

func (s *Solver) traverseDecision(state GameTree, updatePlayer int, reach []float64, caches *traversalCaches) float64 {
	player := state.Player()
	infoset := state.Infoset()
	actions := state.LegalActions()

	node, ok := s.Table[infoset]
	if !ok {
		node = NewInfosetNode(len(actions))
		s.Table[infoset] = node
	} else {
		node.Resize(len(actions))
	}

	strategy := s.currentStrategy(node, infoset, player, updatePlayer, caches)

	actionUtils := make([]float64, len(actions))
	var nodeUtil float64
	for i, action := range actions {
		prev := reach[player]
		reach[player] *= strategy[i]
		child := s.applyAction(state, action, caches)
		actionUtils[i] = s.traverse(child, updatePlayer, reach, caches)
		reach[player] = prev
		nodeUtil += strategy[i] * actionUtils[i]
	}

	s.updateAverageStrategy(node, strategy, reach[player])

	if player == updatePlayer {
		s.updateRegrets(node, actions, actionUtils, nodeUtil, reach, player)
	}

	s.storeValue(state, updatePlayer, caches, nodeUtil)
	return nodeUtil
}

func (s *Solver) currentStrategy(node *InfosetNode, infoset string, player, updatePlayer int, caches *traversalCaches) []float64 {
	if s.Config.CacheOpponentStrategies && player != updatePlayer {
		if cached, ok := caches.strategy[infoset]; ok && len(cached) == len(node.Regrets) {
			return cached
		}
		strategy := node.CurrentStrategy()
		caches.strategy[infoset] = strategy
		return strategy
	}
	return node.CurrentStrategy()
}

func (s *Solver) applyAction(state GameTree, action int, caches *traversalCaches) GameTree {
	if !s.Config.CacheSubtreeActions {
		return state.ApplyAction(action)
	}
	base, ok := state.SubtreeActionCacheKey()
	if !ok {
		return state.ApplyAction(action)
	}
	key := actionCacheKey{base, action}
	if child, ok := caches.action[key]; ok {
		return child
	}
	child := state.ApplyAction(action)
	caches.action[key] = child
	return child
}

func (s *Solver) updateAverageStrategy(node *InfosetNode, strategy []float64, reachPlayer float64) {
	weight := 1.0
	if s.Config.LinearAveraging {
		weight = float64(s.Iteration)
	}
	if s.Config.Discounted {
		t := float64(s.Iteration)
		weight *= math.Pow(t/(t+1), s.Config.Gamma)
	}
	for i, p := range strategy {
		node.StrategySum[i] += weight * reachPlayer * p
	}
}

func (s *Solver) updateRegrets(node *InfosetNode, actions []int, actionUtils []float64, nodeUtil float64, reach []float64, player int) {
	cfReach := 1.0
	for p, r := range reach {
		if p != player {
			cfReach *= r
		}
	}
	for i := range actions {
		regret := cfReach * (actionUtils[i] - nodeUtil)
		if s.Config.Discounted {
			node.Regrets[i] = discountRegret(node.Regrets[i], regret, s.Iteration, s.Config.Alpha, s.Config.Beta)
		} else {
			node.Regrets[i] = math.Max(0, node.Regrets[i]+regret)
		}
	}
}

// discountRegret applies the discounted-CFR update: the existing regret is
// scaled by t^alpha/(t^alpha+1) if positive or t^beta/(t^beta+1) if
// negative before adding the new increment, per the (alpha, beta, gamma)
// variant in the design notes.
func discountRegret(existing, increment float64, iteration int, alpha, beta float64) float64 {
	t := float64(iteration)
	switch {
	case existing > 0:
		existing *= discountFactor(t, alpha)
	case existing < 0:
		existing *= discountFactor(t, beta)
	}
	return existing + increment
}

func discountFactor(t, exponent float64) float64 {
	if math.IsInf(exponent, 1) {
		return 1
	}
	tn := math.Pow(t, exponent)
	return tn / (tn + 1)
}

// AverageStrategy returns the trained average policy at infoset, falling
// back to a uniform distribution over numActions if the infoset was never
// visited.
func (s *Solver) AverageStrategy(infoset string, numActions int) []float64 {
	if node, ok := s.Table[infoset]; ok {
		return node.AverageStrategy()
	}
	if numActions == 0 {
		return nil
	}
	u := 1.0 / float64(numActions)
	strategy := make([]float64, numActions)
	for i := range strategy {
		strategy[i] = u
	}
	return strategy
}

// Policy returns a [PolicyFunc] reading the solver's current average
// strategy table, suitable for [ExpectedUtility] / [ExploitabilityNPlayer].
func (s *Solver) Policy() PolicyFunc {
	return func(infoset string, numActions int) []float64 {
		return s.AverageStrategy(infoset, numActions)
	}
}

// TrainWithExploitability trains iterations rounds, recording a NashConv
// checkpoint every checkpointEvery iterations (and always at the final
// iteration), using [ExploitabilityNPlayer] against the running average
// policy.
func (s *Solver) TrainWithExploitability(iterations, checkpointEvery int) []ExploitabilityPoint {
	if iterations <= 0 || checkpointEvery <= 0 {
		return nil
	}
	var points []ExploitabilityPoint
	for step := 0; step < iterations; step++ {
		s.Train(1)
		iter := step + 1
		if iter%checkpointEvery == 0 || iter == iterations {
			exp := ExploitabilityNPlayer(s.Root, s.Policy())
			points = append(points, ExploitabilityPoint{Iteration: s.Iteration, Exploitability: exp})
			if s.Config.Logger != nil {
				s.Config.Logger.Info("checkpoint", "iteration", s.Iteration, "exploitability", exp)
			}
		}
	}
	return points
}
