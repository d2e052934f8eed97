package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/common"
)

var eventLine = regexp.MustCompile(`^(\d+)x\s*(.*)$`)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// EventLine is one "<count>x <description>" entry of the event list.
type EventLine struct {
	Count       string
	Description string
}

func (e EventLine) String() string {
	return e.Count + "x " + e.Description
}

// EventLines splits raw event text into its non-blank lines, in order.
func EventLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseEventLine reads one line. A line without a count prefix counts once.
func ParseEventLine(line string) EventLine {
	if m := eventLine.FindStringSubmatch(line); m != nil {
		return EventLine{Count: m[1], Description: m[2]}
	}
	return EventLine{Count: "1", Description: line}
}

// ParseEvents reads every non-blank line of text.
func ParseEvents(text string) []EventLine {
	lines := EventLines(text)
	out := make([]EventLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, ParseEventLine(l))
	}
	return out
}

// SerializeEvents joins events back into newline-separated text.
func SerializeEvents(events []EventLine) string {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// SanitizeCount keeps an all-digit count and maps anything else to "1".
func SanitizeCount(raw string) string {
	if digitsOnly.MatchString(raw) {
		return raw
	}
	return "1"
}

func eventAt(text string, i int) ([]string, EventLine, error) {
	lines := EventLines(text)
	if i < 0 || i >= len(lines) {
		return nil, EventLine{}, fmt.Errorf("event[%d]: %w", i, common.ErrorOutOfRange)
	}
	return lines, ParseEventLine(lines[i]), nil
}

// SetEventCount rewrites the count of line i. Blank lines are dropped from
// the result.
func SetEventCount(text string, i int, raw string) (string, error) {
	lines, ev, err := eventAt(text, i)
	if err != nil {
		return text, err
	}
	ev.Count = SanitizeCount(raw)
	lines[i] = ev.String()
	return strings.Join(lines, "\n"), nil
}

// SetEventDescription rewrites the description of line i.
func SetEventDescription(text string, i int, desc string) (string, error) {
	lines, ev, err := eventAt(text, i)
	if err != nil {
		return text, err
	}
	ev.Description = desc
	lines[i] = ev.String()
	return strings.Join(lines, "\n"), nil
}

// AddEvent appends a "1x " line.
func AddEvent(text string) string {
	const fresh = "1x "
	if text == "" {
		return fresh
	}
	return text + "\n" + fresh
}

// RemoveEvent deletes line i.
func RemoveEvent(text string, i int) (string, error) {
	lines, _, err := eventAt(text, i)
	if err != nil {
		return text, err
	}
	lines = append(lines[:i:i], lines[i+1:]...)
	return strings.Join(lines, "\n"), nil
}
