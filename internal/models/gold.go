package models

import "github.com/dmitrijs2005/voyagelog/internal/format"

// GoldTracker keeps gold equal to end minus start gold until the user types
// their own value. It remembers the last value it derived; gold that still
// equals that value, or is empty, is treated as machine-owned.
type GoldTracker struct {
	derived string
	set     bool
}

// DeriveGold computes the gold delta label for a start/end pair.
func DeriveGold(start, end string) string {
	return format.FormatAmount(format.ParseAmount(end) - format.ParseAmount(start))
}

// Recompute returns the gold value after start or end changed, and whether
// gold was taken over by the derived value.
func (g *GoldTracker) Recompute(start, end, gold string) (string, bool) {
	diff := DeriveGold(start, end)
	if gold == "" || (g.set && gold == g.derived) {
		g.derived = diff
		g.set = true
		return diff, true
	}
	return gold, false
}
