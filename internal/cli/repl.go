package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Show(ctx context.Context) error
	Set(ctx context.Context, name, value string) error
	Ships(ctx context.Context) error
	Font(ctx context.Context, which, name string) error
	Body(ctx context.Context, text string) error
	Host(ctx context.Context, arg string) error
	Crew(ctx context.Context, args []string) error
	Event(ctx context.Context, args []string) error
	Dive(ctx context.Context, args []string) error
	Pages(ctx context.Context) error
	Message(ctx context.Context) error
	Copy(ctx context.Context) error
	Export(ctx context.Context, format string) error
	Reset(ctx context.Context) error
	Sample(ctx context.Context) error
	Save(ctx context.Context, path string) error
	Load(ctx context.Context, path string) error
}

const helpText = `Available commands:
  show                          print the log fields
  mode patrol|skirmish          switch the summary kind
  ship NAME | ships             choose the ship, list the fleet
  voyage N | title T | subtitle T
  body [TEXT]                   replace the log entry (prompts when empty)
  host [N|ID|none]              choose who signs the log
  font title|body [NAME]        choose a typeface
  parchment N | frame N
  crew list|add|set N FIELD V|rep N [on|off]|rm N
  event list|add|count N V|desc N T|rm N
  dive list|add|set N FIELD V|rm N
  team athena|reaper
  gold V | doubloons V | start V | end V | coins V | fish V
  pages                         preview the page layout
  message | copy                print or copy the Discord message
  export [png|pdf]              render and save the pages
  reset | sample
  save FILE | load FILE         write or read a snapshot (.toml, .yaml, .json)
  exit | quit`

// scalar commands map straight onto App.Set.
var scalar = map[string]bool{
	"mode": true, "ship": true, "voyage": true, "title": true, "subtitle": true,
	"parchment": true, "frame": true, "team": true, "gold": true, "doubloons": true,
	"start": true, "end": true, "coins": true, "fish": true,
}

// runREPL reads commands from reader until EOF, "exit" or "quit", and
// dispatches them to a. The first token is the command; the rest of the
// line is its argument. Handler errors are printed and the loop continues.
//
// Handlers that prompt for more input read from the same reader, so the
// loop must not buffer ahead of the current line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vlog (%s)> ", statusFn()))
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && (!errors.Is(readErr, io.EOF) || raw == "") {
			return
		}
		line := strings.TrimSpace(raw)
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]
		rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		var err error
		switch {
		case cmd == "help":
			printlnFn(helpText)

		case scalar[cmd]:
			if rest == "" && cmd != "title" && cmd != "subtitle" && cmd != "voyage" {
				printlnFn("Usage:", cmd, "VALUE")
				continue
			}
			err = a.Set(ctx, cmd, rest)

		case cmd == "show":
			err = a.Show(ctx)

		case cmd == "ships":
			err = a.Ships(ctx)

		case cmd == "font":
			if len(args) == 0 {
				printlnFn("Usage: font title|body [NAME]")
				continue
			}
			err = a.Font(ctx, args[0], strings.Join(args[1:], " "))

		case cmd == "body":
			err = a.Body(ctx, rest)

		case cmd == "host":
			err = a.Host(ctx, rest)

		case cmd == "crew":
			err = a.Crew(ctx, args)

		case cmd == "event":
			err = a.Event(ctx, args)

		case cmd == "dive":
			err = a.Dive(ctx, args)

		case cmd == "pages":
			err = a.Pages(ctx)

		case cmd == "message":
			err = a.Message(ctx)

		case cmd == "copy":
			err = a.Copy(ctx)

		case cmd == "export":
			err = a.Export(ctx, rest)

		case cmd == "reset":
			err = a.Reset(ctx)

		case cmd == "sample":
			err = a.Sample(ctx)

		case cmd == "save", cmd == "load":
			if rest == "" {
				printlnFn("Usage:", cmd, "FILE")
				continue
			}
			if cmd == "save" {
				err = a.Save(ctx, rest)
			} else {
				err = a.Load(ctx, rest)
			}

		case cmd == "exit", cmd == "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// Run starts the interactive session on the App's reader.
func (a *App) Run(ctx context.Context) {
	printlnFn("Voyage log editor (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}
