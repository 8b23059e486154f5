package holdem

import "github.com/cardshark/holdem-solver/internal/eval"

// Payoffs returns each seat's net chip result for a terminal state: winners
// of each pot split it evenly among themselves (remainder truncated), and
// every player's payoff is net of what they put in across the hand.
func (g *GameState) Payoffs() []int {
	payoffs := make([]int, g.NumPlayers)
	for i := 0; i < g.NumPlayers; i++ {
		payoffs[i] = -g.Players[i].TotalWagered
	}

	for _, pot := range g.Pots() {
		winners := g.potWinners(pot)
		if len(winners) == 0 {
			continue
		}
		share := pot.Amount / len(winners)
		for _, seat := range winners {
			payoffs[seat] += share
		}
	}
	return payoffs
}

func (g *GameState) potWinners(pot Pot) []int {
	live := make([]int, 0, len(pot.Eligible))
	for _, seat := range pot.Eligible {
		if !g.Players[seat].Folded {
			live = append(live, seat)
		}
	}
	if len(live) <= 1 {
		return live
	}

	best := eval.Score(0)
	var winners []int
	for _, seat := range live {
		p := &g.Players[seat]
		score := eval.Evaluate7(p.Hole | g.Board)
		switch {
		case score > best:
			best = score
			winners = []int{seat}
		case score == best:
			winners = append(winners, seat)
		}
	}
	return winners
}
