// Package discord renders a voyage log as the text message crews post to
// their Discord log channel.
package discord

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/format"
	"github.com/dmitrijs2005/voyagelog/internal/models"
)

// PlaceholderHostID stands in for the host mention when no host is set.
const PlaceholderHostID = "000000000000000000"

const footer = ":Gullinbursti: Charging Forth, Radiant and Unyielding :Gullinbursti:"

// Format renders s as a Discord message. The result depends only on s.
func Format(s models.LogState) string {
	hostID := PlaceholderHostID
	if host, ok := s.Host(); ok && host.Discord != "" {
		hostID = host.Discord
	}

	aux := ""
	if s.Ship != models.Flagship {
		aux = ", auxiliary to the USS " + string(models.Flagship)
	}

	kind := "Patrol"
	if s.Mode == models.ModeSkirmish {
		kind = "Skirmish"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<@%s>'s log of the %s voyage (%s) aboard the USS %s%s.\n\n",
		hostID, format.MessageOrdinal(s.VoyageNumber), kind, s.Ship, aux)
	b.WriteString("**Entry Log**\n")
	b.WriteString(s.Body)
	b.WriteString("\n\n")

	if s.Mode == models.ModeSkirmish {
		fmt.Fprintf(&b, "**Team:** %s\n\n", s.OurTeam)
		section(&b, "**Crew:**", orDefault(CrewLines(s.Crew), "No crew assigned"))
		section(&b, "**Dives:**", orDefault(DiveLines(s.Dives), "No dives recorded"))
	} else {
		section(&b, "**Loot Confiscated:**", strings.Join(LootLines(s), "\n"))
		section(&b, "**Events:**", orDefault(eventLines(s.Events), "None"))
		section(&b, "**Crew:**", orDefault(CrewLines(s.Crew), "No crew assigned"))
	}
	b.WriteString(footer)
	return b.String()
}

func section(b *strings.Builder, heading, body string) {
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CrewLines lists members that have both a Discord ID and a role, highest
// rank first, one mention per line.
func CrewLines(crew models.Manifest) string {
	var lines []string
	for _, c := range crew.SortByRank() {
		if c.Discord == "" || c.Role == "" {
			continue
		}
		rep := ""
		if c.IsRep {
			rep = " [REP]"
		}
		line := fmt.Sprintf("<@%s> - %s %s%s", c.Discord, c.Role, c.Role.Emoji(), rep)
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n")
}

// LootLines lists the patrol loot. Gold and doubloons always appear;
// ancient coins and fish only when they start with a positive count.
func LootLines(s models.LogState) []string {
	lines := []string{
		":Gold: Gold: " + orDefault(s.Gold, "0"),
		":Doubloons: Doubloons: " + orDefault(s.Doubloons, "0"),
	}
	if format.Positive(s.AncientCoins) {
		lines = append(lines, ":AncientCoin: Ancient Coins: "+s.AncientCoins)
	}
	if format.Positive(s.FishCaught) {
		lines = append(lines, ":fish: Fish: "+s.FishCaught)
	}
	return lines
}

// DiveLines numbers every dive as "n. ours vs theirs (outcome) - notes".
func DiveLines(dives models.DiveLog) string {
	lines := make([]string, len(dives))
	for i, d := range dives {
		line := fmt.Sprintf("%d. %s vs %s (%s)", i+1, d.OurTeam, d.EnemyTeam, d.Outcome)
		if d.Notes != "" {
			line += " - " + d.Notes
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func eventLines(text string) string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
