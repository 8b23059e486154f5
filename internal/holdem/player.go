// Package holdem implements the extensive-form no-limit hold'em game model:
// players, pots, legal-action generation, and action application.
package holdem

import "github.com/cardshark/holdem-solver/internal/cards"

// Player is one seat's state within a hand. The teacher repo carried three
// divergent Player shapes across its own renames (internal/game/hand.go,
// betting.go, player.go); this is the one shape used throughout this module.
type Player struct {
	Seat int
	Hole cards.Hand

	Stack        int
	CurrentBet   int // wagered this street
	TotalWagered int // wagered this hand, across all streets

	Folded          bool
	AllIn           bool
	ActedThisStreet bool
}

// CanAct reports whether the player may still take an action this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// InHand reports whether the player is still live (not folded).
func (p *Player) InHand() bool {
	return !p.Folded
}

// resetForStreet clears per-street bet tracking.
func (p *Player) resetForStreet() {
	p.CurrentBet = 0
	p.ActedThisStreet = false
}
