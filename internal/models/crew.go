package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/google/uuid"
)

// newID is a test seam for crew identity generation.
var newID = uuid.NewString

// CrewEntry is one member of the crew manifest. ID is assigned once at
// creation and never derived from the editable fields, so renaming a member
// keeps the host signature pointing at them.
type CrewEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Discord string `json:"discord"`
	Rank    Rank   `json:"rank"`
	Role    Role   `json:"role"`
	IsRep   bool   `json:"isRep"`
}

// CrewPatch carries the fields to change on a CrewEntry; nil fields are left
// untouched.
type CrewPatch struct {
	Name    *string
	Discord *string
	Rank    *Rank
	Role    *Role
	IsRep   *bool
}

func (p CrewPatch) apply(e *CrewEntry) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Discord != nil {
		e.Discord = *p.Discord
	}
	if p.Rank != nil {
		e.Rank = *p.Rank
	}
	if p.Role != nil {
		e.Role = *p.Role
	}
	if p.IsRep != nil {
		e.IsRep = *p.IsRep
	}
}

// Manifest is the ordered crew list.
type Manifest []CrewEntry

// BlankManifest is the manifest a fresh or reset log starts with.
func BlankManifest() Manifest {
	m := Manifest{}
	m.Add()
	m.Add()
	return m
}

// Add appends an empty entry with a fresh identity and returns it.
func (m *Manifest) Add() CrewEntry {
	e := CrewEntry{ID: newID()}
	*m = append(*m, e)
	return e
}

// IndexOf returns the position of the entry with the given id, or -1.
func (m Manifest) IndexOf(id string) int {
	for i, e := range m {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry with the given id.
func (m Manifest) Find(id string) (CrewEntry, bool) {
	if i := m.IndexOf(id); i >= 0 {
		return m[i], true
	}
	return CrewEntry{}, false
}

func (m Manifest) checkIndex(i int) error {
	if i < 0 || i >= len(m) {
		return fmt.Errorf("crew[%d]: %w", i, common.ErrorOutOfRange)
	}
	return nil
}

// UpdateAt merges patch into the entry at index i.
func (m Manifest) UpdateAt(i int, patch CrewPatch) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}
	patch.apply(&m[i])
	return nil
}

// Update merges patch into the entry with the given id.
func (m Manifest) Update(id string, patch CrewPatch) error {
	i := m.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("crew %q: %w", id, common.ErrorNotFound)
	}
	patch.apply(&m[i])
	return nil
}

// RemoveAt deletes the entry at index i. Other identities are unchanged.
func (m *Manifest) RemoveAt(i int) error {
	if err := m.checkIndex(i); err != nil {
		return err
	}
	*m = append((*m)[:i:i], (*m)[i+1:]...)
	return nil
}

// Remove deletes the entry with the given id.
func (m *Manifest) Remove(id string) error {
	i := m.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("crew %q: %w", id, common.ErrorNotFound)
	}
	return m.RemoveAt(i)
}

// Clone returns an independent copy.
func (m Manifest) Clone() Manifest {
	if m == nil {
		return nil
	}
	out := make(Manifest, len(m))
	copy(out, m)
	return out
}

// ToTransport encodes the manifest as a JSON array in insertion order.
func (m Manifest) ToTransport() (string, error) {
	if m == nil {
		m = Manifest{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode crew: %w", err)
	}
	return string(b), nil
}

// ParseCrew decodes a transport string. Any failure yields an empty manifest.
func ParseCrew(s string) Manifest {
	var m Manifest
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return Manifest{}
	}
	return m
}

// SortByRank returns a copy ordered from highest to lowest rank. The sort is
// stable and unrecognized ranks go last.
func (m Manifest) SortByRank() Manifest {
	out := m.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank.Index() > out[j].Rank.Index()
	})
	return out
}

// DisplayView is the manifest as printed on the log: members with both a
// name and a rank, highest rank first.
func (m Manifest) DisplayView() Manifest {
	filtered := Manifest{}
	for _, e := range m {
		if e.Name != "" && e.Rank != "" {
			filtered = append(filtered, e)
		}
	}
	return filtered.SortByRank()
}

// HostOption is a selectable signer.
type HostOption struct {
	ID    string
	Label string
}

// HostOptions lists the members that can sign the log: every entry with a
// non-blank name, labelled "name - rank".
func (m Manifest) HostOptions() []HostOption {
	var out []HostOption
	for _, e := range m {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		rank := string(e.Rank)
		if rank == "" {
			rank = "No Rank"
		}
		out = append(out, HostOption{ID: e.ID, Label: e.Name + " - " + rank})
	}
	return out
}
