package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardshark/holdem-solver/internal/advisor"
	"github.com/cardshark/holdem-solver/internal/blueprintio"
	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/holdem"
	"github.com/cardshark/holdem-solver/internal/statistics"
)

// Run self-plays cmd.Hands heads-up hands between a blueprint-backed
// advisor (seat 0) and a uniform-random baseline (seat 1), reporting
// aggregate results through internal/statistics the same way the teacher's
// regression tooling summarized self-play.
func (cmd *EvalCmd) Run(ctx context.Context, logger *log.Logger) error {
	if cmd.Hands <= 0 {
		return fmt.Errorf("hands must be positive (got %d)", cmd.Hands)
	}

	bp, err := blueprintio.Load(cmd.Blueprint)
	if err != nil {
		return err
	}
	logger.Info("blueprint loaded", "infosets", bp.Len(), "path", cmd.Blueprint)

	adv, err := advisor.New(bp, 8192)
	if err != nil {
		return fmt.Errorf("new advisor: %w", err)
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	const smallBlind, bigBlind, startingStack = 5, 10, 1000
	stats := &statistics.Statistics{}

	for hand := 0; hand < cmd.Hands; hand++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		dealer := hand % 2
		deck := cards.NewDeck(rng)
		g, err := holdem.NewGameState([]int{startingStack, startingStack}, dealer, smallBlind, bigBlind, deck)
		if err != nil {
			return fmt.Errorf("hand %d: new game state: %w", hand, err)
		}

		for g.Kind != holdem.StateTerminal {
			var action holdem.Action
			if g.ActingSeat == 0 {
				rec, err := adv.Recommend(g, rng)
				if err != nil {
					return fmt.Errorf("hand %d: recommend: %w", hand, err)
				}
				action = rec.Action
			} else {
				actions := g.LegalActions()
				action = actions[rng.Intn(len(actions))]
			}
			if err := g.ApplyAction(action); err != nil {
				return fmt.Errorf("hand %d: apply action: %w", hand, err)
			}
		}

		potTotal := 0
		for _, p := range g.Pots() {
			potTotal += p.Amount
		}

		netBB := float64(g.Payoffs()[0]) / float64(bigBlind)
		stats.Add(statistics.HandResult{
			NetBB:         netBB,
			Seed:          seed,
			Position:      dealer + 1,
			FinalPotSize:  potTotal,
			StreetReached: g.Street.String(),
		})

		if cmd.Hands >= 1000 && (hand+1)%(cmd.Hands/10) == 0 {
			logger.Info("eval progress", "hands", hand+1, "bb_per_hand", stats.Mean())
		}
	}

	lower, upper := stats.ConfidenceInterval95()
	logger.Info("evaluation complete",
		"hands", stats.Hands,
		"bb_per_hand", stats.Mean(),
		"bb_per_100", stats.Mean()*100,
		"95ci_lower", lower*100,
		"95ci_upper", upper*100,
	)
	return nil
}
