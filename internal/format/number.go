package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

var amountPrefix = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)

var defaultPrinter = message.NewPrinter(language.AmericanEnglish)

// StripNumeric drops every character except digits, '.' and '-'.
func StripNumeric(v string) string {
	return nonNumeric.ReplaceAllString(v, "")
}

// Thousands groups the numeric content of v for display ("5250" becomes
// "5,250"). Empty input renders as "0"; input whose numeric content is not a
// valid number is returned unchanged. At most three fraction digits are kept.
func Thousands(v string) string {
	return ThousandsIn(defaultPrinter, v)
}

// ThousandsIn is Thousands with an explicit locale printer.
func ThousandsIn(p *message.Printer, v string) string {
	if v == "" {
		return "0"
	}
	n, ok := jsNumber(StripNumeric(v))
	if !ok {
		return v
	}
	return p.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

// ParseAmount reads a currency amount leniently: formatting characters are
// stripped, the longest leading number is used and anything unparseable is 0.
func ParseAmount(v string) float64 {
	m := amountPrefix.FindString(StripNumeric(v))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

// FormatAmount renders a computed amount as a plain numeric string, or ""
// when it is zero.
func FormatAmount(n float64) string {
	if n == 0 || math.IsNaN(n) {
		return ""
	}
	return formatFloat(n)
}

// LeadingInt reads an optional sign and the digits that follow leading
// whitespace, ignoring the rest ("25 coins" is 25). ok is false when no digit
// is present.
func LeadingInt(v string) (n float64, ok bool) {
	s := strings.TrimLeft(v, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, _ = strconv.ParseFloat(s[:end], 64)
	if neg {
		n = -n
	}
	return n, true
}

// Positive reports whether v starts with an integer greater than zero.
func Positive(v string) bool {
	n, ok := LeadingInt(v)
	return ok && n > 0
}
