// Package advisor serves action recommendations from a trained blueprint
// at inference time: build an information-set key from live state, look up
// its average strategy (uniform if unseen), and sample an action from it.
package advisor

import (
	"fmt"
	"math/rand"

	lru "github.com/opencoff/golang-lru"

	"github.com/cardshark/holdem-solver/internal/abstraction"
	"github.com/cardshark/holdem-solver/internal/bucket"
	"github.com/cardshark/holdem-solver/internal/holdem"
	"github.com/cardshark/holdem-solver/internal/infoset"
)

// Blueprint is the read-only view an Advisor needs over a trained table:
// the average strategy for a key, if one was ever visited during training.
type Blueprint interface {
	AverageStrategy(key infoset.Key) ([]float64, bool)
}

// Advisor recommends an action for the player on turn in a live GameState,
// caching recently queried info-set keys since advisory queries in a live
// session repeat heavily on the same texture.
type Advisor struct {
	blueprint Blueprint
	cache     *lru.Cache
}

// New returns an Advisor backed by blueprint, caching up to cacheSize
// distinct info-set lookups.
func New(blueprint Blueprint, cacheSize int) (*Advisor, error) {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("advisor: new cache: %w", err)
	}
	return &Advisor{blueprint: blueprint, cache: cache}, nil
}

// Recommendation is one action paired with the probability the average
// strategy assigns to it.
type Recommendation struct {
	Action      holdem.Action
	Probability float64
}

// Recommend builds the info-set key for g's acting player, looks up its
// average strategy (falling back to uniform over the live legal-action
// list when the key was never visited during training), and samples one
// action from it using rng.
func (a *Advisor) Recommend(g *holdem.GameState, rng *rand.Rand) (Recommendation, error) {
	actions := g.LegalActions()
	if len(actions) == 0 {
		return Recommendation{}, fmt.Errorf("advisor: no legal actions at current state")
	}

	key := buildKey(g, len(actions))
	strategy := a.strategyFor(key, len(actions))

	idx := sampleIndex(strategy, rng)
	return Recommendation{Action: actions[idx], Probability: strategy[idx]}, nil
}

// ActionWeights exposes the full distribution over the live legal-action
// list, for callers (e.g. the TUI or websocket server) that want to show
// every option's weight rather than a single sample.
func (a *Advisor) ActionWeights(g *holdem.GameState) ([]holdem.Action, []float64) {
	actions := g.LegalActions()
	if len(actions) == 0 {
		return nil, nil
	}
	key := buildKey(g, len(actions))
	return actions, a.strategyFor(key, len(actions))
}

func (a *Advisor) strategyFor(key infoset.Key, actionCount int) []float64 {
	if cached, ok := a.cache.Get(key.String()); ok {
		return cached.([]float64)
	}

	strategy, ok := a.blueprint.AverageStrategy(key)
	if !ok || len(strategy) != actionCount {
		strategy = uniform(actionCount)
	}

	a.cache.Add(key.String(), strategy)
	return strategy
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	v := 1.0 / float64(n)
	for i := range out {
		out[i] = v
	}
	return out
}

func sampleIndex(strategy []float64, rng *rand.Rand) int {
	r := rng.Float64()
	cumulative := 0.0
	for i, p := range strategy {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	return len(strategy) - 1
}

func buildKey(g *holdem.GameState, arity int) infoset.Key {
	p := &g.Players[g.ActingSeat]
	b := bucket.Classify(p.Hole, g.Board, g.Street)
	history := abstraction.EncodeHistory(g.History)
	return infoset.New(b, g.Street, history, arity)
}
