// Command advisor loads a trained blueprint and recommends an action for a
// single hand, given hole cards, a board, and the pot/stack state leading
// up to the decision. It is the minimal CLI entry point into
// internal/advisor; cmd/advisor-tui and cmd/advisor-server layer richer
// interfaces on the same package.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardshark/holdem-solver/internal/advisor"
	"github.com/cardshark/holdem-solver/internal/blueprintio"
	"github.com/cardshark/holdem-solver/internal/bucket"
	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/equity"
	"github.com/cardshark/holdem-solver/internal/holdem"
)

var cli struct {
	Blueprint string `help:"path to a blueprint written by solver train" required:""`
	Hole      string `help:"hero's two hole cards, e.g. \"AsKd\"" required:""`
	Board     string `help:"community cards dealt so far, e.g. \"7h2d9s\""`
	Pot       int    `help:"current pot size in chips (accepted but not applied to the synthetic state)" default:"0"`
	ToCall    int    `help:"chips hero must call to continue; 0 means check is available" default:"0"`
	Stack     int    `help:"hero's remaining stack" default:"1000"`
	BigBlind  int    `help:"big blind size, used to size bets/raises" default:"10"`
	Opponents int    `help:"live opponents remaining, for the equity estimate" default:"1"`
	Seed      int64  `help:"RNG seed for sampling/equity; 0 derives one from time" default:"0"`
}

func main() {
	kong.Parse(&cli, kong.Name("advisor"), kong.Description("recommend an action from a trained blueprint"))
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger) error {
	hole, err := parseHand(cli.Hole)
	if err != nil {
		return fmt.Errorf("parse hole cards: %w", err)
	}
	if hole.CountCards() != 2 {
		return fmt.Errorf("hole must be exactly 2 cards, got %q", cli.Hole)
	}

	board, err := parseHand(cli.Board)
	if err != nil {
		return fmt.Errorf("parse board: %w", err)
	}

	bp, err := blueprintio.Load(cli.Blueprint)
	if err != nil {
		return fmt.Errorf("load blueprint: %w", err)
	}
	logger.Info("blueprint loaded", "infosets", bp.Len())

	adv, err := advisor.New(bp, 4096)
	if err != nil {
		return err
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := syntheticState(hole, board)
	street := streetFor(board.CountCards())
	b := bucket.Classify(hole, board, street)
	fmt.Printf("bucket: %s  street: %s\n", b, street)

	actions, weights := adv.ActionWeights(g)
	fmt.Println("recommended distribution:")
	for i, a := range actions {
		fmt.Printf("  %-6s amount=%-6d weight=%.3f\n", a.Kind, a.Amount, weights[i])
	}

	rec, err := adv.Recommend(g, rng)
	if err != nil {
		return err
	}
	fmt.Printf("sampled action: %s (amount=%d, p=%.3f)\n", rec.Action.Kind, rec.Action.Amount, rec.Probability)

	result, err := equity.Calculate(hole, board, cli.Opponents, 20000, rng)
	if err == nil {
		fmt.Printf("display equity vs %d opponent(s): %.1f%%\n", cli.Opponents, result.Equity(cli.Opponents)*100)
	}
	return nil
}

// syntheticState builds a minimal GameState that LegalActions/ActionWeights
// can operate on, reflecting the stack/to-call inputs supplied on the
// command line rather than a fully dealt hand — the advisor only needs
// enough state to compute the bucket, history, and legal-action list.
// The --pot input is not applied.
func syntheticState(hole, board cards.Hand) *holdem.GameState {
	stack := cli.Stack
	if stack <= 0 {
		stack = 1000
	}
	deck := cards.NewDeck(rand.New(rand.NewSource(1)))
	g, _ := holdem.NewGameState([]int{stack + cli.ToCall, stack + cli.ToCall}, 0, cli.BigBlind/2, cli.BigBlind, deck)

	g.Players[0].Hole = hole
	g.Board = board
	g.Street = streetFor(board.CountCards())
	g.Players[0].CurrentBet = 0
	g.Players[0].Stack = stack
	g.HighestBet = cli.ToCall
	g.ActingSeat = 0
	return g
}

func streetFor(boardCards int) bucket.Street {
	switch boardCards {
	case 0:
		return bucket.Preflop
	case 3:
		return bucket.Flop
	case 4:
		return bucket.Turn
	default:
		return bucket.River
	}
}

func parseHand(s string) (cards.Hand, error) {
	s = strings.TrimSpace(s)
	var h cards.Hand
	for i := 0; i+1 < len(s); i += 2 {
		c, err := cards.ParseCard(s[i : i+2])
		if err != nil {
			return 0, err
		}
		h = h.Add(c)
	}
	return h, nil
}
