package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardRoundTrip(t *testing.T) {
	tests := []string{"As", "Td", "2c", "Kh", "9s", "Qd"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			c, err := ParseCard(s)
			require.NoError(t, err)
			assert.Equal(t, s, c.String())
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	tests := []string{"", "A", "Axx", "1s", "Az"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := ParseCard(s)
			assert.Error(t, err)
		})
	}
}

func TestCardRankSuit(t *testing.T) {
	c := NewCard(Ace, Spades)
	assert.Equal(t, Ace, c.Rank())
	assert.Equal(t, Spades, c.Suit())
}

func TestHandCountAndHas(t *testing.T) {
	ac, _ := ParseCard("As")
	kc, _ := ParseCard("Kd")
	h := NewHand(ac, kc)
	assert.Equal(t, 2, h.CountCards())
	assert.True(t, h.Has(ac))
	assert.True(t, h.Has(kc))

	qc, _ := ParseCard("Qh")
	assert.False(t, h.Has(qc))
}

func TestHandSuitMask(t *testing.T) {
	ac, _ := ParseCard("As")
	kc, _ := ParseCard("Ks")
	qd, _ := ParseCard("Qd")
	h := NewHand(ac, kc, qd)

	spadeMask := h.SuitMask(Spades)
	assert.Equal(t, uint16(1<<Ace|1<<King), spadeMask)

	diamondMask := h.SuitMask(Diamonds)
	assert.Equal(t, uint16(1<<Queen), diamondMask)
}

func TestHandRankMaskWheelAce(t *testing.T) {
	ac, _ := ParseCard("As")
	h := NewHand(ac)
	mask := h.RankMask()
	assert.NotZero(t, mask&(1<<Ace))
	assert.NotZero(t, mask&(1<<13))
}

func TestDeckDealsFiftyTwoUniqueCards(t *testing.T) {
	d := NewDeck(nil)
	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		dealt := d.Deal(1)
		require.Len(t, dealt, 1)
		assert.False(t, seen[dealt[0]], "card dealt twice: %s", dealt[0])
		seen[dealt[0]] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckDealShortReturnsNil(t *testing.T) {
	d := NewDeck(nil)
	d.Deal(50)
	assert.Nil(t, d.Deal(5))
}

func TestRemoveKnownExcludesHand(t *testing.T) {
	ac, _ := ParseCard("As")
	kc, _ := ParseCard("Kd")
	known := NewHand(ac, kc)

	remaining := RemoveKnown(known)
	assert.Len(t, remaining, 50)
	for _, c := range remaining {
		assert.NotEqual(t, ac, c)
		assert.NotEqual(t, kc, c)
	}
}
