package layout

import (
	"strings"
	"unicode/utf8"
)

// Advance reports the horizontal extent of s when drawn in the body font.
type Advance func(s string) float64

// Wrap breaks text into lines no wider than width. Hard newlines are kept
// (an empty line still occupies a line), words wrap greedily on spaces and
// a word wider than the line is broken between runes.
func Wrap(text string, width float64, advance Advance) []string {
	var out []string
	for _, hard := range strings.Split(text, "\n") {
		out = append(out, wrapLine(hard, width, advance)...)
	}
	return out
}

func wrapLine(line string, width float64, advance Advance) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := ""
	for _, w := range words {
		candidate := w
		if cur != "" {
			candidate = cur + " " + w
		}
		if advance(candidate) <= width {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		if advance(w) <= width {
			cur = w
			continue
		}
		pieces := breakWord(w, width, advance)
		lines = append(lines, pieces[:len(pieces)-1]...)
		cur = pieces[len(pieces)-1]
	}
	return append(lines, cur)
}

// breakWord splits w into runs that fit width. Every run holds at least one
// rune, so a single glyph wider than the line still makes progress.
func breakWord(w string, width float64, advance Advance) []string {
	var pieces []string
	start := 0
	for i := 0; i < len(w); {
		_, size := utf8.DecodeRuneInString(w[i:])
		if i > start && advance(w[start:i+size]) > width {
			pieces = append(pieces, w[start:i])
			start = i
		}
		i += size
	}
	return append(pieces, w[start:])
}
