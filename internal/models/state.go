package models

import (
	"strconv"

	"github.com/dmitrijs2005/voyagelog/internal/format"
)

// DefaultTitle is shown when neither a voyage heading nor a title is set.
const DefaultTitle = "Log Title"

// LogState is everything the editor holds for one voyage log.
type LogState struct {
	Mode         Mode
	Title        string
	Body         string
	Signature    string // ID of the host crew entry
	Subtitle     string
	Ship         Ship
	VoyageNumber string
	TitleFont    Font
	BodyFont     Font
	Parchment    int
	Frame        int

	Events       string
	Crew         Manifest
	Gold         string
	Doubloons    string
	StartGold    string
	EndGold      string
	AncientCoins string
	FishCaught   string

	OurTeam Team
	Dives   DiveLog
}

// DefaultState is the state of a freshly opened editor.
func DefaultState() LogState {
	return LogState{
		Mode:      ModePatrol,
		Ship:      Flagship,
		TitleFont: FontCharm,
		BodyFont:  FontCharm,
		Parchment: 1,
		Frame:     1,
		Crew:      BlankManifest(),
		OurTeam:   TeamAthena,
		Dives:     DiveLog{},
	}
}

// ResetState is what the reset action leaves behind. The mode is kept; the
// title and the font pairing differ from DefaultState.
func ResetState(mode Mode) LogState {
	s := DefaultState()
	s.Mode = mode
	s.Title = DefaultTitle
	s.TitleFont = FontFelipa
	s.BodyFont = FontJimNightshade
	return s
}

// Clone returns a copy that shares no slices with s.
func (s LogState) Clone() LogState {
	out := s
	out.Crew = s.Crew.Clone()
	out.Dives = s.Dives.Clone()
	return out
}

// Host returns the crew entry named by Signature.
func (s LogState) Host() (CrewEntry, bool) {
	if s.Signature == "" {
		return CrewEntry{}, false
	}
	return s.Crew.Find(s.Signature)
}

// DisplayTitle is the heading on the first page.
func (s LogState) DisplayTitle() string {
	if s.VoyageNumber != "" && s.Ship != "" {
		return format.DisplayOrdinal(s.VoyageNumber) + " Voyage Log of the USS " + string(s.Ship)
	}
	if s.Title != "" {
		return s.Title
	}
	return DefaultTitle
}

// SignatureLines returns the "rank name" line and the line beneath it, or
// ok=false when no host is selected.
func (s LogState) SignatureLines() (name, sub string, ok bool) {
	host, found := s.Host()
	if !found {
		return "", "", false
	}
	sub = s.Subtitle
	if sub == "" {
		sub = s.Ship.Motto()
	}
	return string(host.Rank) + " " + host.Name, sub, true
}

// ParchmentAsset names the background image for the selected parchment.
func (s LogState) ParchmentAsset() string {
	if s.Parchment <= 1 {
		return "parchment.png"
	}
	return "parchment" + strconv.Itoa(s.Parchment) + ".png"
}

// FrameAsset names the frame overlay, or "" when no frame is selected.
func (s LogState) FrameAsset() string {
	if s.Frame <= 0 {
		return ""
	}
	return "frame" + strconv.Itoa(s.Frame) + ".png"
}

// ShipAsset names the emblem drawn behind the text.
func (s LogState) ShipAsset() string {
	return "ships/" + string(s.Ship) + ".png"
}
