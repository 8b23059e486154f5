package holdem

// Pot is a main or side pot, eligible for the seats that were still live
// when it was capped.
type Pot struct {
	Amount   int
	Eligible []int
}

// PotManager accumulates collected bets into a main pot and, once any
// player goes all-in for less than the table's full wager, splits them
// into side pots.
type PotManager struct {
	pots []Pot
}

// NewPotManager returns a manager with a single, empty main pot eligible
// for every seat passed in.
func NewPotManager(players []*Player) *PotManager {
	return &PotManager{pots: []Pot{{Eligible: eligibleSeats(players)}}}
}

func eligibleSeats(players []*Player) []int {
	seats := make([]int, 0, len(players))
	for _, p := range players {
		if !p.Folded {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// Total returns the sum of all pots.
func (pm *PotManager) Total() int {
	total := 0
	for _, pot := range pm.pots {
		total += pot.Amount
	}
	return total
}

// CollectBets moves each player's current-street bet into the main pot.
// Call CalculateSidePots afterward to split it if any all-in capped it.
func (pm *PotManager) CollectBets(players []*Player) {
	for _, p := range players {
		if p.CurrentBet > 0 {
			pm.pots[0].Amount += p.CurrentBet
			p.CurrentBet = 0
		}
	}
}

// CalculateSidePots rebuilds the pot list from each player's total
// hand-long wager, splitting at every distinct all-in amount.
func (pm *PotManager) CalculateSidePots(players []*Player) {
	allInLevels := make(map[int]bool)
	for _, p := range players {
		if p.AllIn && p.TotalWagered > 0 {
			allInLevels[p.TotalWagered] = true
		}
	}
	if len(allInLevels) == 0 {
		return
	}

	levels := make([]int, 0, len(allInLevels))
	for lvl := range allInLevels {
		levels = append(levels, lvl)
	}
	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			if levels[i] > levels[j] {
				levels[i], levels[j] = levels[j], levels[i]
			}
		}
	}

	pm.pots = nil
	previousMax := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if !p.Folded && p.TotalWagered > previousMax {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		for _, p := range players {
			contribution := p.TotalWagered - previousMax
			if contribution > level-previousMax {
				contribution = level - previousMax
			}
			if contribution > 0 {
				pot.Amount += contribution
			}
		}
		if pot.Amount > 0 && len(pot.Eligible) > 0 {
			pm.pots = append(pm.pots, pot)
		}
		previousMax = level
	}

	main := Pot{}
	for _, p := range players {
		if !p.Folded && p.TotalWagered > previousMax {
			main.Eligible = append(main.Eligible, p.Seat)
			main.Amount += p.TotalWagered - previousMax
		}
	}
	if main.Amount > 0 && len(main.Eligible) > 0 {
		pm.pots = append(pm.pots, main)
	}
}

// Pots returns the current pot list.
func (pm *PotManager) Pots() []Pot {
	return pm.pots
}

// Clone returns an independent deep copy, for CFR traversal branching.
func (pm *PotManager) Clone() *PotManager {
	clone := &PotManager{pots: make([]Pot, len(pm.pots))}
	for i, p := range pm.pots {
		clone.pots[i] = Pot{Amount: p.Amount, Eligible: append([]int(nil), p.Eligible...)}
	}
	return clone
}

// PotsWithUncollected returns the pots with any not-yet-collected
// current-street bets folded into the last pot, for pot-size queries
// mid-street.
func (pm *PotManager) PotsWithUncollected(players []*Player) []Pot {
	uncollected := 0
	for _, p := range players {
		uncollected += p.CurrentBet
	}
	if uncollected == 0 {
		return pm.pots
	}
	result := make([]Pot, len(pm.pots))
	copy(result, pm.pots)
	if len(result) > 0 {
		result[len(result)-1].Amount += uncollected
	}
	return result
}
