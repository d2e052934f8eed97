package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeExec) record(name string, args ...string) error {
	call := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, call)
	if f.fail[name] {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) Show(ctx context.Context) error { return f.record("show") }
func (f *fakeExec) Set(ctx context.Context, name, value string) error {
	return f.record("set", name, value)
}
func (f *fakeExec) Ships(ctx context.Context) error { return f.record("ships") }
func (f *fakeExec) Font(ctx context.Context, which, name string) error {
	return f.record("font", which, name)
}
func (f *fakeExec) Body(ctx context.Context, text string) error   { return f.record("body", text) }
func (f *fakeExec) Host(ctx context.Context, arg string) error    { return f.record("host", arg) }
func (f *fakeExec) Crew(ctx context.Context, args []string) error { return f.record("crew", args...) }
func (f *fakeExec) Event(ctx context.Context, args []string) error {
	return f.record("event", args...)
}
func (f *fakeExec) Dive(ctx context.Context, args []string) error { return f.record("dive", args...) }
func (f *fakeExec) Pages(ctx context.Context) error               { return f.record("pages") }
func (f *fakeExec) Message(ctx context.Context) error             { return f.record("message") }
func (f *fakeExec) Copy(ctx context.Context) error                { return f.record("copy") }
func (f *fakeExec) Export(ctx context.Context, format string) error {
	return f.record("export", format)
}
func (f *fakeExec) Reset(ctx context.Context) error             { return f.record("reset") }
func (f *fakeExec) Sample(ctx context.Context) error            { return f.record("sample") }
func (f *fakeExec) Save(ctx context.Context, path string) error { return f.record("save", path) }
func (f *fakeExec) Load(ctx context.Context, path string) error { return f.record("load", path) }

// capturePrint swaps printlnFn for a recorder.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runScript(t *testing.T, exec execIface, lines ...string) {
	t.Helper()
	input := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, input)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{}

	runScript(t, exec,
		"help",
		"",
		"mode skirmish",
		"title  The Long Watch ",
		"ship Skadi",
		"font title Jim Nightshade",
		"body",
		"host 2",
		"crew set 1 rank Vice Admiral",
		"event count 2 5",
		"dive add",
		"gold 1,250",
		"pages",
		"message",
		"copy",
		"export pdf",
		"save log.toml",
		"load log.yaml",
		"sample",
		"reset",
		"show",
		"ships",
		"exit",
		"show",
	)

	assert.Equal(t, []string{
		"set mode skirmish",
		"set title The Long Watch",
		"set ship Skadi",
		"font title Jim Nightshade",
		"body",
		"host 2",
		"crew set 1 rank Vice Admiral",
		"event count 2 5",
		"dive add",
		"set gold 1,250",
		"pages",
		"message",
		"copy",
		"export pdf",
		"save log.toml",
		"load log.yaml",
		"sample",
		"reset",
		"show",
		"ships",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	runScript(t, exec, "mode", "font", "save", "frobnicate", "quit")

	assert.Empty(t, exec.calls)
	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Usage: mode VALUE")
	assert.Contains(t, joined, "Usage: font title|body [NAME]")
	assert.Contains(t, joined, "Usage: save FILE")
	assert.Contains(t, joined, "Unknown command: frobnicate")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_EmptyTitleClearsIt(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{}

	runScript(t, exec, "title", "voyage")

	assert.Equal(t, []string{"set title", "set voyage"}, exec.calls)
}

func TestRunREPL_ErrorsArePrintedAndLoopContinues(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{fail: map[string]bool{"show": true}}

	runScript(t, exec, "show", "message")

	require.Equal(t, []string{"show", "message"}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{}

	input := bufio.NewReader(strings.NewReader("show\nmessage"))
	runREPL(context.Background(), exec, func() string { return "" }, input)

	assert.Equal(t, []string{"show", "message"}, exec.calls)
}
