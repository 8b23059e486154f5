package holdem

// ActionKind enumerates the distinct action types a legal-action list can
// contain.
type ActionKind int

const (
	ActionFold ActionKind = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionAllIn
)

func (k ActionKind) String() string {
	switch k {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// Action is one legal move: the actor, its kind, and the player's
// resulting current-street bet if taken. PreActionBet is the actor's
// current-street bet immediately before the action, recorded so the bet
// sizing abstraction can compute the added amount after the fact.
type Action struct {
	Actor        int
	Kind         ActionKind
	Amount       int // resulting CurrentBet for the actor after the action
	PreActionBet int
}

// betSizeFractions are applied, in order, to the sizing base for both
// opening bets and raises.
var betSizeFractions = []float64{0.33, 0.66, 1.00, 2.00}

// LegalActions enumerates the actions available to the player on turn,
// deterministically, per the bet-sizing and raise-sizing rules.
func (g *GameState) LegalActions() []Action {
	if g.Kind != StateDecision {
		return nil
	}
	p := &g.Players[g.ActingSeat]
	toCall := g.HighestBet - p.CurrentBet

	actions := []Action{{Actor: g.ActingSeat, Kind: ActionFold, Amount: p.CurrentBet, PreActionBet: p.CurrentBet}}

	if toCall <= 0 {
		actions = append(actions, Action{Actor: g.ActingSeat, Kind: ActionCheck, Amount: p.CurrentBet, PreActionBet: p.CurrentBet})

		base := g.potSize()
		if base < g.BigBlind {
			base = g.BigBlind
		}
		seen := map[int]bool{}
		for _, frac := range betSizeFractions {
			added := int(frac * float64(base))
			if added <= 0 || added >= p.Stack {
				continue
			}
			target := p.CurrentBet + added
			if seen[target] {
				continue
			}
			seen[target] = true
			actions = append(actions, Action{Actor: g.ActingSeat, Kind: ActionBet, Amount: target, PreActionBet: p.CurrentBet})
		}

		if p.Stack > 0 {
			actions = append(actions, Action{Actor: g.ActingSeat, Kind: ActionAllIn, Amount: p.CurrentBet + p.Stack, PreActionBet: p.CurrentBet})
		}
		return actions
	}

	callAmount := toCall
	if callAmount > p.Stack {
		callAmount = p.Stack
	}
	actions = append(actions, Action{Actor: g.ActingSeat, Kind: ActionCall, Amount: p.CurrentBet + callAmount, PreActionBet: p.CurrentBet})

	if p.Stack > toCall {
		base := g.potSize() + toCall
		seen := map[int]bool{}
		for _, frac := range betSizeFractions {
			raiseTo := g.HighestBet + int(frac*float64(base))
			added := raiseTo - p.CurrentBet
			if added <= 0 || added >= p.Stack || raiseTo <= g.HighestBet {
				continue
			}
			if seen[raiseTo] {
				continue
			}
			seen[raiseTo] = true
			actions = append(actions, Action{Actor: g.ActingSeat, Kind: ActionRaise, Amount: raiseTo, PreActionBet: p.CurrentBet})
		}
	}

	actions = append(actions, Action{Actor: g.ActingSeat, Kind: ActionAllIn, Amount: p.CurrentBet + p.Stack, PreActionBet: p.CurrentBet})
	return actions
}
