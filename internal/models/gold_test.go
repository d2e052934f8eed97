package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoldTracker_OverrideSticksUntilCleared(t *testing.T) {
	var g GoldTracker

	gold, changed := g.Recompute("1000", "6250", "")
	assert.True(t, changed)
	assert.Equal(t, "5250", gold)

	gold = "9999"
	gold, changed = g.Recompute("1000", "7000", gold)
	assert.False(t, changed)
	assert.Equal(t, "9999", gold)

	gold = ""
	gold, changed = g.Recompute("1000", "7500", gold)
	assert.True(t, changed)
	assert.Equal(t, "6500", gold)

	gold, changed = g.Recompute("500", "7500", gold)
	assert.True(t, changed, "derived value is still machine-owned")
	assert.Equal(t, "7000", gold)
}

func TestGoldTracker_FreshTrackerDoesNotClaimTypedGold(t *testing.T) {
	var g GoldTracker
	gold, changed := g.Recompute("1,000", "6,250", "5,250")
	assert.False(t, changed)
	assert.Equal(t, "5,250", gold)
}

func TestDeriveGold(t *testing.T) {
	assert.Equal(t, "5250", DeriveGold("1,000", "6,250"))
	assert.Equal(t, "", DeriveGold("100", "100"))
	assert.Equal(t, "", DeriveGold("", ""))
	assert.Equal(t, "-50", DeriveGold("100", "50"))
	assert.Equal(t, "200", DeriveGold("abc", "200"))
}
