// Package equity provides a diagnostic Monte Carlo win-probability
// estimator, independent of the trainer and its bucketized abstraction.
// It exists for display purposes — an advisor CLI or TUI showing a hand's
// raw equity alongside the blueprint's recommendation — and never feeds
// the solver's regret tables.
package equity

import (
	"fmt"
	"math/rand"

	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/eval"
)

// Result is the outcome of a Monte Carlo equity rollout.
type Result struct {
	Wins        int
	Ties        int
	Simulations int
}

// WinRate returns the fraction of simulations hero won outright.
func (r Result) WinRate() float64 {
	if r.Simulations == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Simulations)
}

// TieRate returns the fraction of simulations hero split.
func (r Result) TieRate() float64 {
	if r.Simulations == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.Simulations)
}

// Equity returns hero's overall equity share, counting a tie against n-way
// opponents as an even split of the pot.
func (r Result) Equity(opponents int) float64 {
	if r.Simulations == 0 {
		return 0
	}
	share := 1.0 / float64(opponents+1)
	return (float64(r.Wins) + float64(r.Ties)*share) / float64(r.Simulations)
}

// Calculate runs a Monte Carlo rollout estimating hero's equity against
// opponents random hands, given the known board (0-5 cards). Known cards
// are removed from the deck before opponent hands and the remaining board
// are dealt.
func Calculate(hero, board cards.Hand, opponents, simulations int, rng *rand.Rand) (Result, error) {
	if hero.CountCards() != 2 {
		return Result{}, fmt.Errorf("equity: hero must hold exactly 2 cards, got %d", hero.CountCards())
	}
	if opponents < 1 {
		opponents = 1
	}
	if simulations < 1 {
		simulations = 1
	}

	known := hero | board
	boardCardsKnown := board.CountCards()
	if boardCardsKnown > 5 {
		return Result{}, fmt.Errorf("equity: board has %d cards, want at most 5", boardCardsKnown)
	}

	var result Result
	result.Simulations = simulations

	for i := 0; i < simulations; i++ {
		available := cards.RemoveKnown(known)
		shuffle(available, rng)

		idx := 0
		finalBoard := board
		for n := 0; n < 5-boardCardsKnown; n++ {
			finalBoard = finalBoard.Add(available[idx])
			idx++
		}

		heroScore := eval.Evaluate7(hero | finalBoard)

		heroWins := true
		tied := false
		for o := 0; o < opponents; o++ {
			oppHand := cards.NewHand(available[idx], available[idx+1])
			idx += 2

			oppScore := eval.Evaluate7(oppHand | finalBoard)
			switch {
			case oppScore > heroScore:
				heroWins = false
			case oppScore == heroScore:
				tied = true
			}
		}

		switch {
		case !heroWins:
		case tied:
			result.Ties++
		default:
			result.Wins++
		}
	}

	return result, nil
}

func shuffle(deck []cards.Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// AdjustForContext rescales a baseline win probability using opponent
// tendencies and stack depth, mirroring the context-adjustment hook the
// original odds calculator exposed alongside its Monte Carlo baseline: a
// looser, more aggressive opponent devalues made hands relative to the raw
// rollout, and a shallow stack reduces the value of implied odds that the
// baseline number otherwise assumes.
func AdjustForContext(baselineEquity, opponentAggression, opponentTightness, stackDepthRatio float64) float64 {
	aggressionPenalty := 0.1 * opponentAggression
	tightnessBonus := 0.05 * (1 - opponentTightness)
	stackFactor := 0.9 + 0.1*clamp01(stackDepthRatio)

	adjusted := (baselineEquity - aggressionPenalty + tightnessBonus) * stackFactor
	return clamp01(adjusted)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
