// Package snapshot saves a whole voyage log to a TOML, YAML or JSON file
// and loads it back. The file format follows the extension.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("snapshot %q: %w", path, common.ErrUnsupportedFormat)
}

// Crew is a crew entry as written to a snapshot.
type Crew struct {
	ID      string `json:"id" toml:"id" yaml:"id"`
	Name    string `json:"name" toml:"name" yaml:"name"`
	Discord string `json:"discord,omitempty" toml:"discord,omitempty" yaml:"discord,omitempty"`
	Rank    string `json:"rank,omitempty" toml:"rank,omitempty" yaml:"rank,omitempty"`
	Role    string `json:"role,omitempty" toml:"role,omitempty" yaml:"role,omitempty"`
	IsRep   bool   `json:"isRep,omitempty" toml:"isRep,omitempty" yaml:"isRep,omitempty"`
}

// Dive is a skirmish dive as written to a snapshot.
type Dive struct {
	OurTeam   string `json:"ourTeam" toml:"ourTeam" yaml:"ourTeam"`
	EnemyTeam string `json:"enemyTeam" toml:"enemyTeam" yaml:"enemyTeam"`
	Outcome   string `json:"outcome" toml:"outcome" yaml:"outcome"`
	Notes     string `json:"notes,omitempty" toml:"notes,omitempty" yaml:"notes,omitempty"`
}

// Document is the on-disk shape of a log.
type Document struct {
	Mode         string `json:"mode" toml:"mode" yaml:"mode"`
	Title        string `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Ship         string `json:"ship" toml:"ship" yaml:"ship"`
	VoyageNumber string `json:"voyageNumber,omitempty" toml:"voyageNumber,omitempty" yaml:"voyageNumber,omitempty"`
	Subtitle     string `json:"subtitle,omitempty" toml:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Signature    string `json:"signature,omitempty" toml:"signature,omitempty" yaml:"signature,omitempty"`
	TitleFont    string `json:"titleFont" toml:"titleFont" yaml:"titleFont"`
	BodyFont     string `json:"bodyFont" toml:"bodyFont" yaml:"bodyFont"`
	Parchment    int    `json:"parchment" toml:"parchment" yaml:"parchment"`
	Frame        int    `json:"frame" toml:"frame" yaml:"frame"`
	Body         string `json:"body,omitempty" toml:"body,omitempty" yaml:"body,omitempty"`
	Events       string `json:"events,omitempty" toml:"events,omitempty" yaml:"events,omitempty"`

	Gold         string `json:"gold,omitempty" toml:"gold,omitempty" yaml:"gold,omitempty"`
	Doubloons    string `json:"doubloons,omitempty" toml:"doubloons,omitempty" yaml:"doubloons,omitempty"`
	StartGold    string `json:"startGold,omitempty" toml:"startGold,omitempty" yaml:"startGold,omitempty"`
	EndGold      string `json:"endGold,omitempty" toml:"endGold,omitempty" yaml:"endGold,omitempty"`
	AncientCoins string `json:"ancientCoins,omitempty" toml:"ancientCoins,omitempty" yaml:"ancientCoins,omitempty"`
	FishCaught   string `json:"fishCaught,omitempty" toml:"fishCaught,omitempty" yaml:"fishCaught,omitempty"`

	OurTeam string `json:"ourTeam" toml:"ourTeam" yaml:"ourTeam"`
	Crew    []Crew `json:"crew" toml:"crew" yaml:"crew"`
	Dives   []Dive `json:"dives,omitempty" toml:"dives,omitempty" yaml:"dives,omitempty"`
}

// FromState copies s into a Document.
func FromState(s models.LogState) Document {
	d := Document{
		Mode:         string(s.Mode),
		Title:        s.Title,
		Ship:         string(s.Ship),
		VoyageNumber: s.VoyageNumber,
		Subtitle:     s.Subtitle,
		Signature:    s.Signature,
		TitleFont:    string(s.TitleFont),
		BodyFont:     string(s.BodyFont),
		Parchment:    s.Parchment,
		Frame:        s.Frame,
		Body:         s.Body,
		Events:       s.Events,
		Gold:         s.Gold,
		Doubloons:    s.Doubloons,
		StartGold:    s.StartGold,
		EndGold:      s.EndGold,
		AncientCoins: s.AncientCoins,
		FishCaught:   s.FishCaught,
		OurTeam:      string(s.OurTeam),
		Crew:         make([]Crew, 0, len(s.Crew)),
	}
	for _, c := range s.Crew {
		d.Crew = append(d.Crew, Crew{
			ID: c.ID, Name: c.Name, Discord: c.Discord,
			Rank: string(c.Rank), Role: string(c.Role), IsRep: c.IsRep,
		})
	}
	for _, dv := range s.Dives {
		d.Dives = append(d.Dives, Dive{
			OurTeam: string(dv.OurTeam), EnemyTeam: string(dv.EnemyTeam),
			Outcome: string(dv.Outcome), Notes: dv.Notes,
		})
	}
	return d
}

// State validates d and builds a LogState from it. Missing enumerations
// take their defaults; unknown ones are rejected.
func (d Document) State() (models.LogState, error) {
	s := models.DefaultState()
	var err error

	if d.Mode != "" {
		if s.Mode, err = models.ParseMode(d.Mode); err != nil {
			return s, err
		}
	}
	if d.Ship != "" {
		if s.Ship, err = models.ParseShip(d.Ship); err != nil {
			return s, err
		}
	}
	if d.TitleFont != "" {
		if s.TitleFont, err = models.ParseFont(d.TitleFont); err != nil {
			return s, err
		}
	}
	if d.BodyFont != "" {
		if s.BodyFont, err = models.ParseFont(d.BodyFont); err != nil {
			return s, err
		}
	}
	if d.OurTeam != "" {
		if s.OurTeam, err = models.ParseTeam(d.OurTeam); err != nil {
			return s, err
		}
	}
	if d.Parchment != 0 {
		if d.Parchment < models.MinParchment || d.Parchment > models.MaxParchment {
			return s, fmt.Errorf("parchment %d: %w", d.Parchment, common.ErrorOutOfRange)
		}
		s.Parchment = d.Parchment
	}
	if d.Frame < models.MinFrame || d.Frame > models.MaxFrame {
		return s, fmt.Errorf("frame %d: %w", d.Frame, common.ErrorOutOfRange)
	}
	s.Frame = d.Frame

	s.Title = d.Title
	s.VoyageNumber = d.VoyageNumber
	s.Subtitle = d.Subtitle
	s.Signature = d.Signature
	s.Body = d.Body
	s.Events = d.Events
	s.Gold = d.Gold
	s.Doubloons = d.Doubloons
	s.StartGold = d.StartGold
	s.EndGold = d.EndGold
	s.AncientCoins = d.AncientCoins
	s.FishCaught = d.FishCaught

	if len(d.Crew) > 0 {
		s.Crew = make(models.Manifest, 0, len(d.Crew))
		for _, c := range d.Crew {
			s.Crew = append(s.Crew, models.CrewEntry{
				ID: c.ID, Name: c.Name, Discord: c.Discord,
				Rank: models.Rank(c.Rank), Role: models.Role(c.Role), IsRep: c.IsRep,
			})
		}
	}

	for i, dv := range d.Dives {
		e := models.DiveEntry{Notes: dv.Notes}
		if e.OurTeam, err = models.ParseTeam(dv.OurTeam); err != nil {
			return s, fmt.Errorf("dive %d: %w", i+1, err)
		}
		if e.EnemyTeam, err = models.ParseTeam(dv.EnemyTeam); err != nil {
			return s, fmt.Errorf("dive %d: %w", i+1, err)
		}
		if e.Outcome, err = models.ParseOutcome(dv.Outcome); err != nil {
			return s, fmt.Errorf("dive %d: %w", i+1, err)
		}
		s.Dives = append(s.Dives, e)
	}
	return s, nil
}

// Marshal encodes s in format f.
func Marshal(f Format, s models.LogState) ([]byte, error) {
	d := FromState(s)
	switch f {
	case FormatTOML:
		return toml.Marshal(d)
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	}
	return nil, fmt.Errorf("format %q: %w", f, common.ErrUnsupportedFormat)
}

// Unmarshal decodes a log written in format f.
func Unmarshal(f Format, data []byte) (models.LogState, error) {
	var d Document
	var err error
	switch f {
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	default:
		return models.LogState{}, fmt.Errorf("format %q: %w", f, common.ErrUnsupportedFormat)
	}
	if err != nil {
		return models.LogState{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return d.State()
}

// Save writes s to path.
func Save(path string, s models.LogState) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(f, s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a log from path.
func Load(path string) (models.LogState, error) {
	f, err := FormatFor(path)
	if err != nil {
		return models.LogState{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.LogState{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(f, data)
}
