// Package solver implements regret matching and the external-sampling
// MCCFR trainer used to produce an average-strategy blueprint.
package solver

import (
	"sync"

	"github.com/cardshark/holdem-solver/internal/infoset"
)

// RegretNode accumulates regret and strategy-sum for one information set.
// Actions are addressed by index into the legal-action list computed for
// that information set; the caller is responsible for keeping that
// ordering stable across calls for the same key.
type RegretNode struct {
	mu          sync.Mutex
	regretSum   []float64
	strategySum []float64
}

// UpdateOptions configures how a node folds in a regret/strategy update.
type UpdateOptions struct {
	// ClampNegativeRegrets implements CFR+-style flooring of regret at zero.
	ClampNegativeRegrets bool
	// LinearAveraging weights later iterations' contribution to the
	// strategy sum by the iteration number instead of uniformly.
	LinearAveraging bool
	Iteration       int
}

func newRegretNode(n int) *RegretNode {
	return &RegretNode{
		regretSum:   make([]float64, n),
		strategySum: make([]float64, n),
	}
}

func (n *RegretNode) ensureSize(size int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.regretSum) >= size {
		return
	}
	missing := size - len(n.regretSum)
	n.regretSum = append(n.regretSum, make([]float64, missing)...)
	n.strategySum = append(n.strategySum, make([]float64, missing)...)
}

// CurrentStrategy returns the regret-matching distribution for the node
// and accumulates it into strategySum weighted by realizationWeight (the
// traverser's own reach probability, per this module's strategy-sum
// weighting convention).
func (n *RegretNode) CurrentStrategy(realizationWeight float64) []float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	strategy := regretMatch(n.regretSum)
	for i, s := range strategy {
		n.strategySum[i] += realizationWeight * s
	}
	return strategy
}

// regretMatch computes sigma = R+ / sum(R+), or uniform if all non-positive.
func regretMatch(regretSum []float64) []float64 {
	n := len(regretSum)
	strategy := make([]float64, n)
	total := 0.0
	for i, r := range regretSum {
		if r > 0 {
			strategy[i] = r
			total += r
		}
	}
	if total <= 0 {
		uniform := 1.0 / float64(n)
		for i := range strategy {
			strategy[i] = uniform
		}
		return strategy
	}
	for i := range strategy {
		strategy[i] /= total
	}
	return strategy
}

// UpdateRegret adds delta to the regret accumulated for action i.
func (n *RegretNode) UpdateRegret(i int, delta float64, opts UpdateOptions) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.regretSum[i] += delta
	if opts.ClampNegativeRegrets && n.regretSum[i] < 0 {
		n.regretSum[i] = 0
	}
}

// AverageStrategy normalizes strategySum into a probability distribution,
// falling back to uniform when the node was never visited.
func (n *RegretNode) AverageStrategy() []float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return averageOf(n.strategySum)
}

func averageOf(strategySum []float64) []float64 {
	total := 0.0
	for _, s := range strategySum {
		total += s
	}
	avg := make([]float64, len(strategySum))
	if total <= 0 {
		uniform := 1.0 / float64(len(avg))
		for i := range avg {
			avg[i] = uniform
		}
		return avg
	}
	for i, s := range strategySum {
		avg[i] = s / total
	}
	return avg
}

// StrategySum exposes the raw, unnormalized accumulator — the value
// persisted to disk (see internal/persist), since the average is always a
// cheap derived view.
func (n *RegretNode) StrategySum() []float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]float64(nil), n.strategySum...)
}

const shardCount = 64
const shardMask = shardCount - 1

type shard struct {
	mu      sync.RWMutex
	entries map[string]*RegretNode
}

// RegretTable is a sharded, concurrency-safe map from information-set key
// to RegretNode. Sharding (rather than a single mutex, or a literal
// arena-plus-indices rewrite) gives the same per-bucket lock granularity
// the design calls for; Go's garbage collector removes the
// double-free/iterator-invalidation motivation for an arena in the first
// place.
type RegretTable struct {
	shards [shardCount]shard
}

// NewRegretTable returns an empty table.
func NewRegretTable() *RegretTable {
	t := &RegretTable{}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*RegretNode)
	}
	return t
}

// Get returns the node for key, creating it with arity actionCount if
// absent, and growing it in place if a previously narrower node is found
// (this should not happen for a well-formed abstraction, since the key
// already encodes arity, but is handled defensively).
func (t *RegretTable) Get(key infoset.Key, actionCount int) *RegretNode {
	k := key.String()
	s := t.shardFor(k)

	s.mu.RLock()
	node, ok := s.entries[k]
	s.mu.RUnlock()
	if ok {
		node.ensureSize(actionCount)
		return node
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if node, ok = s.entries[k]; ok {
		node.ensureSize(actionCount)
		return node
	}
	node = newRegretNode(actionCount)
	s.entries[k] = node
	return node
}

// AverageStrategy looks up the average strategy for key without creating
// an entry if absent, satisfying the advisor.Blueprint interface.
func (t *RegretTable) AverageStrategy(key infoset.Key) ([]float64, bool) {
	k := key.String()
	s := t.shardFor(k)

	s.mu.RLock()
	node, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return node.AverageStrategy(), true
}

// Size returns the number of information sets tracked.
func (t *RegretTable) Size() int {
	total := 0
	for i := range t.shards {
		t.shards[i].mu.RLock()
		total += len(t.shards[i].entries)
		t.shards[i].mu.RUnlock()
	}
	return total
}

// Range calls fn for every (key, node) pair in the table. fn must not
// mutate the table.
func (t *RegretTable) Range(fn func(key string, node *RegretNode)) {
	for i := range t.shards {
		t.shards[i].mu.RLock()
		for k, v := range t.shards[i].entries {
			fn(k, v)
		}
		t.shards[i].mu.RUnlock()
	}
}

func (t *RegretTable) shardFor(key string) *shard {
	return &t.shards[fnv1a(key)&shardMask]
}

func fnv1a(key string) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	hash := uint32(offset32)
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return hash
}
