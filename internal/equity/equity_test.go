package equity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardshark/holdem-solver/internal/cards"
)

func mustHand(t *testing.T, notation ...string) cards.Hand {
	t.Helper()
	var h cards.Hand
	for _, n := range notation {
		c, err := cards.ParseCard(n)
		require.NoError(t, err)
		h = h.Add(c)
	}
	return h
}

func TestCalculateRejectsWrongHeroCardCount(t *testing.T) {
	hero := mustHand(t, "As")
	_, err := Calculate(hero, 0, 1, 100, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestCalculateAAOverPairDominatesRandomHand(t *testing.T) {
	hero := mustHand(t, "As", "Ad")
	rng := rand.New(rand.NewSource(7))

	result, err := Calculate(hero, 0, 1, 4000, rng)
	require.NoError(t, err)

	assert.Greater(t, result.Equity(1), 0.8, "pocket aces heads-up should win roughly 85%% of the time")
}

func TestCalculateCompletedBoardIsDeterministicShowdown(t *testing.T) {
	hero := mustHand(t, "Ks", "Kd")
	board := mustHand(t, "Kc", "7h", "2d", "9s", "4c") // hero has flopped trip kings by the river
	rng := rand.New(rand.NewSource(3))

	result, err := Calculate(hero, board, 1, 500, rng)
	require.NoError(t, err)
	assert.Equal(t, 500, result.Wins+result.Ties+(result.Simulations-result.Wins-result.Ties))
	assert.Greater(t, result.Equity(1), 0.7)
}

func TestAdjustForContextPenalizesAggressionRewardsDepth(t *testing.T) {
	base := AdjustForContext(0.6, 0.0, 1.0, 1.0)
	aggressive := AdjustForContext(0.6, 1.0, 0.0, 1.0)
	assert.Less(t, aggressive, base)

	shallow := AdjustForContext(0.6, 0.0, 1.0, 0.0)
	deep := AdjustForContext(0.6, 0.0, 1.0, 1.0)
	assert.Less(t, shallow, deep)
}

func TestAdjustForContextStaysInBounds(t *testing.T) {
	for _, v := range []float64{AdjustForContext(1.0, 1.0, 0.0, 1.0), AdjustForContext(0.0, 0.0, 0.0, 0.0)} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
