package solver

import (
	"math/rand"

	"github.com/cardshark/holdem-solver/internal/abstraction"
	"github.com/cardshark/holdem-solver/internal/bucket"
	"github.com/cardshark/holdem-solver/internal/holdem"
	"github.com/cardshark/holdem-solver/internal/infoset"
)

// buildKey derives the information-set key for the player on turn in g.
func buildKey(g *holdem.GameState, bigBlind int, arity int) infoset.Key {
	p := &g.Players[g.ActingSeat]
	b := bucket.Classify(p.Hole, g.Board, g.Street)
	history := abstraction.EncodeHistory(g.History)
	return infoset.New(b, g.Street, history, arity)
}

// traverse runs one external-sampling MCCFR pass rooted at g, accumulating
// regret and strategy-sum for traverser and returning traverser's
// counterfactual utility at g. Opponent and game decisions are resolved by
// sampling a single action from the current strategy; the traverser's own
// decisions branch into every legal action.
func (tr *Trainer) traverse(g *holdem.GameState, traverser int, reach float64, rng *rand.Rand) float64 {
	if g.Kind == holdem.StateTerminal {
		return float64(g.Payoffs()[traverser])
	}

	actions := g.LegalActions()
	if len(actions) == 0 {
		return float64(g.Payoffs()[traverser])
	}

	key := buildKey(g, tr.cfg.BigBlind, len(actions))
	node := tr.regrets.Get(key, len(actions))

	if g.ActingSeat == traverser {
		strategy := node.CurrentStrategy(reach)
		utils := make([]float64, len(actions))
		nodeUtil := 0.0
		for i, a := range actions {
			child := g.Clone()
			if err := child.ApplyAction(a); err != nil {
				continue
			}
			utils[i] = tr.traverse(child, traverser, reach*strategy[i], rng)
			nodeUtil += strategy[i] * utils[i]
		}
		opts := UpdateOptions{ClampNegativeRegrets: tr.cfg.ClampNegativeRegrets, LinearAveraging: tr.cfg.LinearAveraging, Iteration: int(tr.iteration.Load())}
		for i := range actions {
			node.UpdateRegret(i, utils[i]-nodeUtil, opts)
		}
		return nodeUtil
	}

	strategy := node.CurrentStrategy(0)
	idx := sampleIndex(strategy, rng)
	child := g.Clone()
	if err := child.ApplyAction(actions[idx]); err != nil {
		return float64(g.Payoffs()[traverser])
	}
	return tr.traverse(child, traverser, reach, rng)
}

// sampleIndex draws an index from a discrete distribution.
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
