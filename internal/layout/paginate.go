package layout

import (
	"regexp"
	"strings"
)

// ParagraphBreak separates paragraphs inside a page.
const ParagraphBreak = "\n\n"

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// Measurer reports the rendered height of a block of body text.
type Measurer interface {
	Height(text string) float64
}

// WrapMeasurer measures text by wrapping it the way the rasterizer does.
type WrapMeasurer struct {
	Advance    Advance
	Width      float64
	LineHeight float64 // absolute, not a multiple
}

// NewWrapMeasurer builds a measurer for g using advance for glyph widths.
func NewWrapMeasurer(g Geometry, advance Advance) WrapMeasurer {
	return WrapMeasurer{Advance: advance, Width: g.ContentWidth(), LineHeight: g.LineAdvance()}
}

func (m WrapMeasurer) Height(text string) float64 {
	return float64(len(Wrap(text, m.Width, m.Advance))) * m.LineHeight
}

func tokenize(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	paragraphs := paragraphSplit.Split(normalized, -1)

	var tokens []string
	for i, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, strings.Fields(p)...)
		if i < len(paragraphs)-1 {
			tokens = append(tokens, ParagraphBreak)
		}
	}
	return tokens
}

// Paginate splits body text into page-sized chunks. The first chunk must
// fit under the title block; later chunks get the full body height. Words
// are never split across pages and the result always holds at least one
// (possibly empty) page.
func Paginate(text string, g Geometry, m Measurer) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return []string{""}
	}

	var pages []string
	cur := ""
	first := true

	for _, tok := range tokens {
		if tok == ParagraphBreak {
			cur += ParagraphBreak
			continue
		}

		sep := " "
		if cur == "" || strings.HasSuffix(cur, ParagraphBreak) {
			sep = ""
		}
		tentative := cur + sep + tok

		if m.Height(tentative)+2*g.Padding > g.UsableHeight(first) && strings.TrimSpace(cur) != "" {
			pages = append(pages, strings.TrimSpace(cur))
			cur = tok
			first = false
			continue
		}
		cur = tentative
	}

	if rest := strings.TrimSpace(cur); rest != "" {
		pages = append(pages, rest)
	}
	if len(pages) == 0 {
		return []string{""}
	}
	return pages
}
