// Package format converts voyage numbers and loot amounts into the labels
// shown on log pages, in Discord messages and in export file names.
//
// Three ordinal helpers exist because the three contexts disagree on edge
// cases:
//
//	input   DisplayOrdinal  MessageOrdinal  FileOrdinal
//	""      ""              "nth"           "nth"
//	"1"     "Maiden"        "1st"           "1st"
//	"abc"   "abc"           "nth"           "abc"
//	"0"     "0th"           "nth"           "0th"
package format

import (
	"math"
	"strconv"
	"strings"
)

// DisplayOrdinal labels a voyage on the rendered log page. Voyage 1 is the
// "Maiden" voyage; input that is not a number is shown unchanged.
func DisplayOrdinal(v string) string {
	if v == "" {
		return ""
	}
	n, ok := jsNumber(v)
	if !ok {
		return v
	}
	if n == 1 {
		return "Maiden"
	}
	return withSuffix(n)
}

// MessageOrdinal labels a voyage in the Discord message. Empty, zero and
// non-numeric input all become the literal "nth".
func MessageOrdinal(v string) string {
	if v == "" {
		return "nth"
	}
	n, ok := jsNumber(v)
	if !ok || n == 0 {
		return "nth"
	}
	return withSuffix(n)
}

// FileOrdinal labels a voyage in export file names. It never uses "Maiden".
func FileOrdinal(v string) string {
	if v == "" {
		return "nth"
	}
	n, ok := jsNumber(v)
	if !ok {
		return v
	}
	return withSuffix(n)
}

// Suffix returns the English ordinal suffix for n: 11-13 (mod 100) take
// "th", otherwise the last digit picks st/nd/rd/th.
func Suffix(n float64) string {
	rem100 := math.Mod(n, 100)
	if rem100 >= 11 && rem100 <= 13 {
		return "th"
	}
	switch math.Mod(n, 10) {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func withSuffix(n float64) string {
	return formatFloat(n) + Suffix(n)
}

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// jsNumber converts s the way a strict numeric cast does: surrounding
// whitespace is ignored, an empty string is zero, and anything that is not
// a complete finite number reports ok=false.
func jsNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
