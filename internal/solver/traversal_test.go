package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/holdem"
)

// TestBuildKeyIsRotationallyInvariant builds two heads-up preflop states
// whose dealer differs by one seat, with the to-act player holding the
// same two cards in both, and asserts they collapse to the same
// information-set key. The history encoding uses relative seats
// specifically so this holds.
func TestBuildKeyIsRotationallyInvariant(t *testing.T) {
	ace, err := cards.ParseCard("As")
	require.NoError(t, err)
	king, err := cards.ParseCard("Kd")
	require.NoError(t, err)
	hole := cards.NewHand(ace, king)

	a := headsUpPreflop(t, 0, hole)
	b := headsUpPreflop(t, 1, hole)

	require.Equal(t, a.ActingSeat, a.Dealer)
	require.Equal(t, b.ActingSeat, b.Dealer)

	actionsA := a.LegalActions()
	actionsB := b.LegalActions()
	require.Equal(t, len(actionsA), len(actionsB))

	keyA := buildKey(a, 10, len(actionsA))
	keyB := buildKey(b, 10, len(actionsB))
	assert.Equal(t, keyA, keyB)
}

func headsUpPreflop(t *testing.T, dealer int, hole cards.Hand) *holdem.GameState {
	t.Helper()
	deck := cards.NewDeck(nil)
	g, err := holdem.NewGameState([]int{1000, 1000}, dealer, 5, 10, deck)
	require.NoError(t, err)
	g.Players[g.ActingSeat].Hole = hole
	return g
}
