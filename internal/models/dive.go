package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/voyagelog/internal/common"
)

// DivesPerPage is how many dives fit on one summary page.
const DivesPerPage = 12

// DiveEntry is a single skirmish match.
type DiveEntry struct {
	OurTeam   Team    `json:"ourTeam"`
	EnemyTeam Team    `json:"enemyTeam"`
	Outcome   Outcome `json:"outcome"`
	Notes     string  `json:"notes"`
}

// DivePatch carries the fields to change on a DiveEntry.
type DivePatch struct {
	OurTeam   *Team
	EnemyTeam *Team
	Outcome   *Outcome
	Notes     *string
}

// DiveLog is the ordered list of dives.
type DiveLog []DiveEntry

// Add appends a won dive for ourTeam against the opposite side.
func (d *DiveLog) Add(ourTeam Team) DiveEntry {
	e := DiveEntry{OurTeam: ourTeam, EnemyTeam: ourTeam.Opposite(), Outcome: OutcomeWin}
	*d = append(*d, e)
	return e
}

func (d DiveLog) checkIndex(i int) error {
	if i < 0 || i >= len(d) {
		return fmt.Errorf("dive[%d]: %w", i, common.ErrorOutOfRange)
	}
	return nil
}

// UpdateAt merges patch into the dive at index i.
func (d DiveLog) UpdateAt(i int, p DivePatch) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	e := &d[i]
	if p.OurTeam != nil {
		e.OurTeam = *p.OurTeam
	}
	if p.EnemyTeam != nil {
		e.EnemyTeam = *p.EnemyTeam
	}
	if p.Outcome != nil {
		e.Outcome = *p.Outcome
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return nil
}

// RemoveAt deletes the dive at index i.
func (d *DiveLog) RemoveAt(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	*d = append((*d)[:i:i], (*d)[i+1:]...)
	return nil
}

// SetOurTeam moves every dive to team t, leaving enemy sides as they are.
func (d DiveLog) SetOurTeam(t Team) {
	for i := range d {
		d[i].OurTeam = t
	}
}

func (d DiveLog) Clone() DiveLog {
	if d == nil {
		return nil
	}
	out := make(DiveLog, len(d))
	copy(out, d)
	return out
}

// Paginate splits the log into contiguous slices of at most size dives.
// An empty log yields no slices.
func (d DiveLog) Paginate(size int) []DiveLog {
	if size <= 0 {
		size = DivesPerPage
	}
	var pages []DiveLog
	for start := 0; start < len(d); start += size {
		end := min(start+size, len(d))
		pages = append(pages, d[start:end:end])
	}
	return pages
}

// ToTransport encodes the log as a JSON array.
func (d DiveLog) ToTransport() (string, error) {
	if d == nil {
		d = DiveLog{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode dives: %w", err)
	}
	return string(b), nil
}

// ParseDives decodes a transport string. Any failure yields an empty log.
func ParseDives(s string) DiveLog {
	var d DiveLog
	if err := json.Unmarshal([]byte(s), &d); err != nil || d == nil {
		return DiveLog{}
	}
	return d
}
