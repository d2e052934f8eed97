// Package services holds the editor's single source of truth: LogService
// owns the mutable LogState, applies every edit under one lock and signals
// the persister when a tracked field changed.
package services

import (
	"fmt"
	"sync"

	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/dmitrijs2005/voyagelog/internal/models"
)

// Notifier is told that persisted state changed. *persistence.Persister
// satisfies it.
type Notifier interface {
	Schedule()
}

type LogService interface {
	Snapshot() models.LogState
	Replace(s models.LogState)
	SetNotifier(n Notifier)

	SetMode(m models.Mode)
	SetTitle(title string)
	SetBody(body string)
	SetSubtitle(subtitle string)
	SetVoyageNumber(v string)
	SetShip(ship models.Ship)
	SetTitleFont(f models.Font)
	SetBodyFont(f models.Font)
	SetParchment(n int) error
	SetFrame(n int) error
	SetSignature(crewID string) error

	SetEvents(text string)
	AddEvent()
	SetEventCount(i int, raw string) error
	SetEventDescription(i int, desc string) error
	RemoveEvent(i int) error

	SetGold(v string)
	SetDoubloons(v string)
	SetStartGold(v string)
	SetEndGold(v string)
	SetAncientCoins(v string)
	SetFishCaught(v string)

	AddCrew() models.CrewEntry
	UpdateCrew(i int, patch models.CrewPatch) error
	RemoveCrew(i int) error

	SetOurTeam(t models.Team)
	AddDive() models.DiveEntry
	UpdateDive(i int, patch models.DivePatch) error
	RemoveDive(i int) error

	Reset()
	LoadSample()
}

type logService struct {
	mu       sync.Mutex
	state    models.LogState
	gold     models.GoldTracker
	notifier Notifier
}

// NewLogService starts an editor session from initial. The derived gold
// marker is primed the way a freshly mounted editor primes it.
func NewLogService(initial models.LogState) LogService {
	s := &logService{state: initial.Clone()}
	s.state.Gold, _ = s.gold.Recompute(s.state.StartGold, s.state.EndGold, s.state.Gold)
	return s
}

func (s *logService) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

func (s *logService) Snapshot() models.LogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// edit applies fn under the lock. When tracked is set and fn succeeds the
// notifier is told after the lock is released.
func (s *logService) edit(tracked bool, fn func(st *models.LogState) error) error {
	s.mu.Lock()
	err := fn(&s.state)
	n := s.notifier
	s.mu.Unlock()

	if err == nil && tracked && n != nil {
		n.Schedule()
	}
	return err
}

func (s *logService) set(fn func(st *models.LogState)) {
	_ = s.edit(true, func(st *models.LogState) error {
		fn(st)
		return nil
	})
}

func (s *logService) Replace(next models.LogState) {
	s.set(func(st *models.LogState) {
		*st = next.Clone()
		if len(st.Crew) == 0 {
			st.Crew = models.BlankManifest()
		}
		s.gold = models.GoldTracker{}
		st.Gold, _ = s.gold.Recompute(st.StartGold, st.EndGold, st.Gold)
	})
}

func (s *logService) SetMode(m models.Mode) { s.set(func(st *models.LogState) { st.Mode = m }) }

// SetTitle changes the session-only title; it is never persisted.
func (s *logService) SetTitle(title string) {
	_ = s.edit(false, func(st *models.LogState) error {
		st.Title = title
		return nil
	})
}

func (s *logService) SetBody(body string) { s.set(func(st *models.LogState) { st.Body = body }) }

func (s *logService) SetSubtitle(v string) { s.set(func(st *models.LogState) { st.Subtitle = v }) }

func (s *logService) SetVoyageNumber(v string) {
	s.set(func(st *models.LogState) { st.VoyageNumber = v })
}

func (s *logService) SetShip(ship models.Ship) { s.set(func(st *models.LogState) { st.Ship = ship }) }

func (s *logService) SetTitleFont(f models.Font) {
	s.set(func(st *models.LogState) { st.TitleFont = f })
}

func (s *logService) SetBodyFont(f models.Font) { s.set(func(st *models.LogState) { st.BodyFont = f }) }

func (s *logService) SetParchment(n int) error {
	return s.edit(true, func(st *models.LogState) error {
		if n < models.MinParchment || n > models.MaxParchment {
			return fmt.Errorf("parchment %d: %w", n, common.ErrorInvalidValue)
		}
		st.Parchment = n
		return nil
	})
}

func (s *logService) SetFrame(n int) error {
	return s.edit(true, func(st *models.LogState) error {
		if n < models.MinFrame || n > models.MaxFrame {
			return fmt.Errorf("frame %d: %w", n, common.ErrorInvalidValue)
		}
		st.Frame = n
		return nil
	})
}

// SetSignature selects the host by crew ID; "" clears the host.
func (s *logService) SetSignature(crewID string) error {
	return s.edit(true, func(st *models.LogState) error {
		if crewID != "" && st.Crew.IndexOf(crewID) < 0 {
			return fmt.Errorf("host %q: %w", crewID, common.ErrorNotFound)
		}
		st.Signature = crewID
		return nil
	})
}

func (s *logService) SetEvents(text string) { s.set(func(st *models.LogState) { st.Events = text }) }

func (s *logService) AddEvent() {
	s.set(func(st *models.LogState) { st.Events = models.AddEvent(st.Events) })
}

func (s *logService) SetEventCount(i int, raw string) error {
	return s.edit(true, func(st *models.LogState) error {
		text, err := models.SetEventCount(st.Events, i, raw)
		st.Events = text
		return err
	})
}

func (s *logService) SetEventDescription(i int, desc string) error {
	return s.edit(true, func(st *models.LogState) error {
		text, err := models.SetEventDescription(st.Events, i, desc)
		st.Events = text
		return err
	})
}

func (s *logService) RemoveEvent(i int) error {
	return s.edit(true, func(st *models.LogState) error {
		text, err := models.RemoveEvent(st.Events, i)
		st.Events = text
		return err
	})
}

func (s *logService) SetGold(v string) { s.set(func(st *models.LogState) { st.Gold = v }) }

func (s *logService) SetDoubloons(v string) { s.set(func(st *models.LogState) { st.Doubloons = v }) }

func (s *logService) SetAncientCoins(v string) {
	s.set(func(st *models.LogState) { st.AncientCoins = v })
}

func (s *logService) SetFishCaught(v string) { s.set(func(st *models.LogState) { st.FishCaught = v }) }

// SetStartGold and SetEndGold are not persisted themselves; they only
// schedule a write when the derived gold value moved.
func (s *logService) SetStartGold(v string) {
	s.setGoldBound(func(st *models.LogState) { st.StartGold = v })
}

func (s *logService) SetEndGold(v string) {
	s.setGoldBound(func(st *models.LogState) { st.EndGold = v })
}

func (s *logService) setGoldBound(fn func(st *models.LogState)) {
	s.mu.Lock()
	fn(&s.state)
	before := s.state.Gold
	s.state.Gold, _ = s.gold.Recompute(s.state.StartGold, s.state.EndGold, s.state.Gold)
	changed := before != s.state.Gold
	n := s.notifier
	s.mu.Unlock()

	if changed && n != nil {
		n.Schedule()
	}
}

func (s *logService) AddCrew() models.CrewEntry {
	var e models.CrewEntry
	s.set(func(st *models.LogState) { e = st.Crew.Add() })
	return e
}

func (s *logService) UpdateCrew(i int, patch models.CrewPatch) error {
	return s.edit(true, func(st *models.LogState) error { return st.Crew.UpdateAt(i, patch) })
}

// RemoveCrew deletes the member at index i. A host signature pointing at the
// removed member is left as is and simply no longer resolves.
func (s *logService) RemoveCrew(i int) error {
	return s.edit(true, func(st *models.LogState) error { return st.Crew.RemoveAt(i) })
}

// SetOurTeam switches the side for new dives and for every recorded one.
func (s *logService) SetOurTeam(t models.Team) {
	s.set(func(st *models.LogState) {
		st.OurTeam = t
		st.Dives.SetOurTeam(t)
	})
}

func (s *logService) AddDive() models.DiveEntry {
	var e models.DiveEntry
	s.set(func(st *models.LogState) { e = st.Dives.Add(st.OurTeam) })
	return e
}

func (s *logService) UpdateDive(i int, patch models.DivePatch) error {
	return s.edit(true, func(st *models.LogState) error { return st.Dives.UpdateAt(i, patch) })
}

func (s *logService) RemoveDive(i int) error {
	return s.edit(true, func(st *models.LogState) error { return st.Dives.RemoveAt(i) })
}

// Reset clears the log but keeps the mode. Persisted values are overwritten
// by the next scheduled write rather than deleted.
func (s *logService) Reset() {
	s.set(func(st *models.LogState) {
		*st = models.ResetState(st.Mode)
		st.Gold, _ = s.gold.Recompute(st.StartGold, st.EndGold, st.Gold)
	})
}

// LoadSample fills the log with demonstration data for the current mode.
func (s *logService) LoadSample() {
	s.set(func(st *models.LogState) { models.ApplySample(st) })
}
