// Package persistence mirrors the editor state into a kv.Repository: it
// hydrates a LogState once at start-up and writes the whole tracked field
// set back after edits settle.
//
// Title, start gold and end gold are not tracked; they live only for the
// session.
package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/repositories/kv"
)

const (
	KeyMode         = "mode"
	KeyBody         = "body"
	KeySignature    = "signature"
	KeySubtitle     = "subtitle"
	KeyEvents       = "events"
	KeyCrew         = "crew"
	KeyGold         = "gold"
	KeyDoubloons    = "doubloons"
	KeyOurTeam      = "ourTeam"
	KeyDives        = "dives"
	KeyShip         = "selectedShip"
	KeyTitleFont    = "titleFont"
	KeyBodyFont     = "bodyFont"
	KeyParchment    = "parchment"
	KeyFrame        = "frame"
	KeyVoyageNumber = "voyageNumber"
	KeyAncientCoins = "ancientCoins"
	KeyFishCaught   = "fishCaught"
)

// Keys lists every persisted key.
var Keys = []string{
	KeyMode, KeyBody, KeySignature, KeySubtitle, KeyEvents, KeyCrew, KeyGold,
	KeyDoubloons, KeyOurTeam, KeyDives, KeyShip, KeyTitleFont, KeyBodyFont,
	KeyParchment, KeyFrame, KeyVoyageNumber, KeyAncientCoins, KeyFishCaught,
}

// Encode renders the tracked fields of s. A collection that fails to encode
// is left out and reported in the returned error; the other keys are still
// returned.
func Encode(s models.LogState) (map[string][]byte, error) {
	out := map[string][]byte{
		KeyMode:         []byte(s.Mode),
		KeyBody:         []byte(s.Body),
		KeySignature:    []byte(s.Signature),
		KeySubtitle:     []byte(s.Subtitle),
		KeyEvents:       []byte(s.Events),
		KeyGold:         []byte(s.Gold),
		KeyDoubloons:    []byte(s.Doubloons),
		KeyOurTeam:      []byte(s.OurTeam),
		KeyShip:         []byte(s.Ship),
		KeyTitleFont:    []byte(s.TitleFont),
		KeyBodyFont:     []byte(s.BodyFont),
		KeyParchment:    []byte(strconv.Itoa(s.Parchment)),
		KeyFrame:        []byte(strconv.Itoa(s.Frame)),
		KeyVoyageNumber: []byte(s.VoyageNumber),
		KeyAncientCoins: []byte(s.AncientCoins),
		KeyFishCaught:   []byte(s.FishCaught),
	}

	var errs []error
	if crew, err := s.Crew.ToTransport(); err != nil {
		errs = append(errs, err)
	} else {
		out[KeyCrew] = []byte(crew)
	}
	if dives, err := s.Dives.ToTransport(); err != nil {
		errs = append(errs, err)
	} else {
		out[KeyDives] = []byte(dives)
	}
	return out, errors.Join(errs...)
}

// Hydrate overlays base with the values found in repo. The store is read
// once; absent or empty values keep the corresponding field of base and
// values that do not parse fall back as described per field. A failed read
// is logged and leaves base unchanged.
func Hydrate(ctx context.Context, repo kv.Repository, base models.LogState, logger logging.Logger) models.LogState {
	s := base.Clone()

	stored, err := repo.List(ctx)
	if err != nil {
		logger.Warn(ctx, "failed to read persisted fields", "error", err)
		return s
	}

	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		if v := stored[key]; len(v) > 0 {
			values[key] = string(v)
		}
	}
	apply(&s, values)
	return s
}

func apply(s *models.LogState, values map[string]string) {
	text := map[string]*string{
		KeyBody:         &s.Body,
		KeySignature:    &s.Signature,
		KeySubtitle:     &s.Subtitle,
		KeyEvents:       &s.Events,
		KeyGold:         &s.Gold,
		KeyDoubloons:    &s.Doubloons,
		KeyVoyageNumber: &s.VoyageNumber,
		KeyAncientCoins: &s.AncientCoins,
		KeyFishCaught:   &s.FishCaught,
	}
	for key, dst := range text {
		if v, ok := values[key]; ok {
			*dst = v
		}
	}

	if v, ok := values[KeyMode]; ok {
		if m, err := models.ParseMode(v); err == nil {
			s.Mode = m
		}
	}
	if v, ok := values[KeyOurTeam]; ok {
		if t, err := models.ParseTeam(v); err == nil {
			s.OurTeam = t
		}
	}
	if v, ok := values[KeyShip]; ok {
		if ship, err := models.ParseShip(v); err == nil {
			s.Ship = ship
		}
	}
	if v, ok := values[KeyTitleFont]; ok {
		if f, err := models.ParseFont(v); err == nil {
			s.TitleFont = f
		}
	}
	if v, ok := values[KeyBodyFont]; ok {
		if f, err := models.ParseFont(v); err == nil {
			s.BodyFont = f
		}
	}
	if v, ok := values[KeyParchment]; ok {
		s.Parchment = parseIntOr(v, 1, models.MinParchment, models.MaxParchment)
	}
	if v, ok := values[KeyFrame]; ok {
		s.Frame = parseIntOr(v, 0, models.MinFrame, models.MaxFrame)
	}
	if v, ok := values[KeyCrew]; ok {
		s.Crew = models.ParseCrew(v)
	}
	if len(s.Crew) == 0 {
		s.Crew = models.BlankManifest()
	}
	if v, ok := values[KeyDives]; ok {
		s.Dives = models.ParseDives(v)
	}
}

// parseIntOr reads a stored integer, returning fallback for anything that
// is not a non-zero number within [lo, hi].
func parseIntOr(v string, fallback, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n == 0 || n < lo || n > hi {
		return fallback
	}
	return n
}
