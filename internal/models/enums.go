// Package models defines the voyage log state and the collections edited
// inside it: the crew manifest, the dive log and the event list.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/common"
)

// Mode selects which summary a log carries.
type Mode string

const (
	ModePatrol   Mode = "patrol"
	ModeSkirmish Mode = "skirmish"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePatrol:
		return ModePatrol, nil
	case ModeSkirmish:
		return ModeSkirmish, nil
	}
	return "", fmt.Errorf("mode %q: %w", s, common.ErrorInvalidValue)
}

// Team is a skirmish side.
type Team string

const (
	TeamAthena Team = "Athena"
	TeamReaper Team = "Reaper"
)

// Opposite returns the other side.
func (t Team) Opposite() Team {
	if t == TeamAthena {
		return TeamReaper
	}
	return TeamAthena
}

func ParseTeam(s string) (Team, error) {
	for _, t := range []Team{TeamAthena, TeamReaper} {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("team %q: %w", s, common.ErrorInvalidValue)
}

// Outcome is the result of a single dive.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(strings.ToLower(strings.TrimSpace(s))) {
	case OutcomeWin:
		return OutcomeWin, nil
	case OutcomeLoss:
		return OutcomeLoss, nil
	}
	return "", fmt.Errorf("outcome %q: %w", s, common.ErrorInvalidValue)
}

// Ship is a vessel of the fleet.
type Ship string

const (
	ShipGullinbursti Ship = "Gullinbursti"
	ShipGjallarhorn  Ship = "Gjallarhorn"
	ShipSkadi        Ship = "Skadi"
	ShipNott         Ship = "Nott"
	ShipHodr         Ship = "Hodr"
	ShipJormungandr  Ship = "Jormungandr"
	ShipOdin         Ship = "Odin"
	ShipFreyr        Ship = "Freyr"
	ShipAudacious    Ship = "Audacious"
	ShipBerserker    Ship = "Berserker"
	ShipBestla       Ship = "Bestla"
	ShipRagnarok     Ship = "Ragnarok"
	ShipThor         Ship = "Thor"
	ShipTitan        Ship = "Titan"
	ShipTyr          Ship = "Tyr"
	ShipValhalla     Ship = "Valhalla"
)

// Flagship is the ship other vessels are auxiliary to.
const Flagship = ShipGullinbursti

// ShipMotto is printed under the host signature when no subtitle is set.
const ShipMotto = "Charging Forth, Radiant & Unyielding"

var ActiveShips = []Ship{ShipGullinbursti, ShipGjallarhorn, ShipSkadi, ShipNott, ShipHodr}

var RetiredShips = []Ship{
	ShipJormungandr, ShipOdin, ShipFreyr, ShipAudacious, ShipBerserker, ShipBestla,
	ShipRagnarok, ShipThor, ShipTitan, ShipTyr, ShipValhalla,
}

func (s Ship) Retired() bool {
	for _, r := range RetiredShips {
		if r == s {
			return true
		}
	}
	return false
}

// Motto is the same for every ship of the fleet.
func (s Ship) Motto() string { return ShipMotto }

func ParseShip(s string) (Ship, error) {
	s = strings.TrimSpace(s)
	for _, list := range [][]Ship{ActiveShips, RetiredShips} {
		for _, ship := range list {
			if strings.EqualFold(string(ship), s) {
				return ship, nil
			}
		}
	}
	return "", fmt.Errorf("ship %q: %w", s, common.ErrorInvalidValue)
}

// Font is a display typeface for the title or the body.
type Font string

const (
	FontCharm          Font = "Charm"
	FontQuintessential Font = "Quintessential"
	FontFelipa         Font = "Felipa"
	FontParisienne     Font = "Parisienne"
	FontJimNightshade  Font = "Jim Nightshade"
	FontNiconne        Font = "Niconne"
)

var Fonts = []Font{FontCharm, FontQuintessential, FontFelipa, FontParisienne, FontJimNightshade, FontNiconne}

func ParseFont(s string) (Font, error) {
	s = strings.TrimSpace(s)
	for _, f := range Fonts {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("font %q: %w", s, common.ErrorInvalidValue)
}

const (
	MinParchment = 1
	MaxParchment = 5
	MinFrame     = 0
	MaxFrame     = 5
)
