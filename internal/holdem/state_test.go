package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardshark/holdem-solver/internal/cards"
)

func TestHeadsUpPreflopFold(t *testing.T) {
	deck := cards.NewDeck(nil)
	g, err := NewGameState([]int{1000, 1000}, 0, 5, 10, deck)
	require.NoError(t, err)

	// Heads-up: dealer posts SB, acts first preflop.
	assert.Equal(t, 0, g.ActingSeat)

	actions := g.LegalActions()
	require.NotEmpty(t, actions)

	var fold Action
	found := false
	for _, a := range actions {
		if a.Kind == ActionFold {
			fold = a
			found = true
		}
	}
	require.True(t, found, "fold must always be legal")

	require.NoError(t, g.ApplyAction(fold))

	assert.Equal(t, StateTerminal, g.Kind)
	payoffs := g.Payoffs()
	assert.Equal(t, 5, payoffs[1])
	assert.Equal(t, -5, payoffs[0])
}

func TestLegalActionsAlwaysIncludeFold(t *testing.T) {
	deck := cards.NewDeck(nil)
	g, err := NewGameState([]int{500, 500, 500}, 1, 5, 10, deck)
	require.NoError(t, err)

	actions := g.LegalActions()
	hasFold := false
	for _, a := range actions {
		if a.Kind == ActionFold {
			hasFold = true
		}
	}
	assert.True(t, hasFold)
}

func TestApplyActionRejectsWrongActor(t *testing.T) {
	deck := cards.NewDeck(nil)
	g, err := NewGameState([]int{500, 500}, 0, 5, 10, deck)
	require.NoError(t, err)

	wrongActor := (g.ActingSeat + 1) % 2
	err = g.ApplyAction(Action{Actor: wrongActor, Kind: ActionFold})
	assert.Error(t, err)
}

func TestCallThenCheckReachesFlop(t *testing.T) {
	deck := cards.NewDeck(nil)
	g, err := NewGameState([]int{1000, 1000}, 0, 5, 10, deck)
	require.NoError(t, err)

	var call Action
	for _, a := range g.LegalActions() {
		if a.Kind == ActionCall {
			call = a
		}
	}
	require.NoError(t, g.ApplyAction(call))

	// Big blind gets the option to check.
	var check Action
	for _, a := range g.LegalActions() {
		if a.Kind == ActionCheck {
			check = a
		}
	}
	require.NoError(t, g.ApplyAction(check))

	assert.Equal(t, StateDecision, g.Kind)
	assert.Equal(t, 3, g.Board.CountCards())
}
