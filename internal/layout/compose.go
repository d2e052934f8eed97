package layout

import "github.com/dmitrijs2005/voyagelog/internal/models"

// Page is what one canvas shows.
type Page struct {
	Index    int
	IsBody   bool
	BodyText string

	// ShowTitle is set on page 0 only.
	ShowTitle bool

	// Dives is this page's slice of the skirmish log; DiveOffset is the
	// zero-based position of its first dive in the whole log.
	Dives      models.DiveLog
	DiveOffset int

	// ShowPatrolSummary draws events and loot.
	ShowPatrolSummary bool
	ShowManifest      bool
	ShowSignature     bool
}

// Plan is the ordered list of pages for one log.
type Plan struct {
	Mode  models.Mode
	Pages []Page
}

// Total is the number of pages in the plan.
func (p Plan) Total() int { return len(p.Pages) }

// ShowPageNumbers reports whether page numbers are drawn at all.
func (p Plan) ShowPageNumbers() bool { return len(p.Pages) > 1 }

// BodyPages counts the leading narrative pages.
func (p Plan) BodyPages() int {
	n := 0
	for _, pg := range p.Pages {
		if pg.IsBody {
			n++
		}
	}
	return n
}

// SummaryPageCount is one for patrol logs and one per DivesPerPage dives
// (at least one) for skirmish logs.
func SummaryPageCount(mode models.Mode, dives int) int {
	if mode != models.ModeSkirmish {
		return 1
	}
	return max(1, (dives+models.DivesPerPage-1)/models.DivesPerPage)
}

// Compose lays out body pages followed by summary pages. bodyPages comes
// from Paginate and must not be empty.
func Compose(s models.LogState, bodyPages []string) Plan {
	if len(bodyPages) == 0 {
		bodyPages = []string{""}
	}
	summaries := SummaryPageCount(s.Mode, len(s.Dives))
	total := len(bodyPages) + summaries
	divePages := s.Dives.Paginate(models.DivesPerPage)

	plan := Plan{Mode: s.Mode, Pages: make([]Page, 0, total)}
	for i, text := range bodyPages {
		plan.Pages = append(plan.Pages, Page{
			Index:     i,
			IsBody:    true,
			BodyText:  text,
			ShowTitle: i == 0,
		})
	}
	for k := 0; k < summaries; k++ {
		idx := len(bodyPages) + k
		last := idx == total-1
		pg := Page{
			Index:         idx,
			ShowManifest:  last,
			ShowSignature: last,
		}
		switch s.Mode {
		case models.ModeSkirmish:
			if k < len(divePages) {
				pg.Dives = divePages[k]
			}
			pg.DiveOffset = k * models.DivesPerPage
		default:
			pg.ShowPatrolSummary = true
		}
		plan.Pages = append(plan.Pages, pg)
	}
	return plan
}

// PlanFor paginates the body of s with m and composes the full plan.
func PlanFor(s models.LogState, g Geometry, m Measurer) Plan {
	return Compose(s, Paginate(s.Body, g, m))
}
