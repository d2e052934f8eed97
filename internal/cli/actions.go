package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/dmitrijs2005/voyagelog/internal/discord"
	"github.com/dmitrijs2005/voyagelog/internal/export"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/snapshot"
)

// writeClipboard is a test seam for the system clipboard.
var writeClipboard = clipboard.WriteAll

var labelStyle = lipgloss.NewStyle().Bold(true).Width(14)

// parseIndex turns a 1-based position typed by the user into an index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position %q: %w", s, common.ErrorInvalidValue)
	}
	return n - 1, nil
}

func matchRank(s string) models.Rank {
	for _, r := range models.RankOrder {
		if strings.EqualFold(string(r), s) {
			return r
		}
	}
	return models.Rank(s)
}

func matchRole(s string) models.Role {
	for _, r := range models.Roles {
		if strings.EqualFold(string(r), s) {
			return r
		}
	}
	return models.Role(s)
}

func (a *App) status() string {
	s := a.svc.Snapshot()
	return fmt.Sprintf("%s %s", s.Mode, s.Ship)
}

func (a *App) field(label, value string) {
	a.println(labelStyle.Render(label) + value)
}

// Show prints the editable fields of the log.
func (a *App) Show(ctx context.Context) error {
	s := a.svc.Snapshot()

	a.field("Mode", string(s.Mode))
	a.field("Ship", "USS "+string(s.Ship))
	a.field("Voyage", s.VoyageNumber)
	a.field("Heading", s.DisplayTitle())
	a.field("Title", s.Title)
	a.field("Subtitle", s.Subtitle)
	if host, ok := s.Host(); ok {
		a.field("Host", host.Name)
	} else {
		a.field("Host", "")
	}
	a.field("Fonts", fmt.Sprintf("%s / %s", s.TitleFont, s.BodyFont))
	a.field("Parchment", strconv.Itoa(s.Parchment))
	a.field("Frame", strconv.Itoa(s.Frame))

	if s.Mode == models.ModeSkirmish {
		a.field("Team", string(s.OurTeam))
		a.field("Dives", strconv.Itoa(len(s.Dives)))
	} else {
		a.field("Gold", s.Gold)
		a.field("Doubloons", s.Doubloons)
		a.field("Start gold", s.StartGold)
		a.field("End gold", s.EndGold)
		a.field("Ancient coins", s.AncientCoins)
		a.field("Fish caught", s.FishCaught)
		a.field("Events", strconv.Itoa(len(models.EventLines(s.Events))))
	}
	a.field("Crew", strconv.Itoa(len(s.Crew)))
	a.field("Body", fmt.Sprintf("%d characters", len([]rune(s.Body))))
	return nil
}

// Set changes a single scalar field of the log.
func (a *App) Set(ctx context.Context, name, value string) error {
	switch name {
	case "mode":
		m, err := models.ParseMode(value)
		if err != nil {
			return err
		}
		a.svc.SetMode(m)
	case "ship":
		ship, err := models.ParseShip(value)
		if err != nil {
			return err
		}
		a.svc.SetShip(ship)
		if ship.Retired() {
			a.printf("Note: the USS %s is retired\n", ship)
		}
	case "voyage":
		a.svc.SetVoyageNumber(value)
	case "title":
		a.svc.SetTitle(value)
	case "subtitle":
		a.svc.SetSubtitle(value)
	case "parchment", "frame":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s %q: %w", name, value, common.ErrorInvalidValue)
		}
		if name == "frame" {
			return a.svc.SetFrame(n)
		}
		return a.svc.SetParchment(n)
	case "team":
		t, err := models.ParseTeam(value)
		if err != nil {
			return err
		}
		a.svc.SetOurTeam(t)
	case "gold":
		a.svc.SetGold(value)
	case "doubloons":
		a.svc.SetDoubloons(value)
	case "start":
		a.svc.SetStartGold(value)
		a.field("Gold", a.svc.Snapshot().Gold)
	case "end":
		a.svc.SetEndGold(value)
		a.field("Gold", a.svc.Snapshot().Gold)
	case "coins":
		a.svc.SetAncientCoins(value)
	case "fish":
		a.svc.SetFishCaught(value)
	default:
		return fmt.Errorf("field %q: %w", name, common.ErrorNotFound)
	}
	return nil
}

// Ships lists the fleet, active ships first.
func (a *App) Ships(ctx context.Context) error {
	a.println("Active:")
	for _, s := range models.ActiveShips {
		a.println("  " + string(s))
	}
	a.println("Retired:")
	for _, s := range models.RetiredShips {
		a.println("  " + string(s))
	}
	return nil
}

// Font sets the title or body typeface. Without a name it lists the choices.
func (a *App) Font(ctx context.Context, which, name string) error {
	if name == "" {
		for _, f := range models.Fonts {
			a.println("  " + string(f))
		}
		return nil
	}
	f, err := models.ParseFont(name)
	if err != nil {
		return err
	}
	switch which {
	case "title":
		a.svc.SetTitleFont(f)
	case "body":
		a.svc.SetBodyFont(f)
	default:
		return fmt.Errorf("font target %q: %w", which, common.ErrorInvalidValue)
	}
	return nil
}

// Body replaces the narrative. With no text the user is prompted for
// several lines.
func (a *App) Body(ctx context.Context, text string) error {
	if text == "" {
		var err error
		text, err = GetMultiline(a.reader, "Log entry", a.out)
		if err != nil {
			return err
		}
	}
	a.svc.SetBody(text)
	return nil
}

// Host selects the signer by manifest position or crew ID; "none" clears it.
func (a *App) Host(ctx context.Context, arg string) error {
	s := a.svc.Snapshot()
	if arg == "" {
		for _, o := range s.Crew.HostOptions() {
			mark := " "
			if o.ID == s.Signature {
				mark = "*"
			}
			a.printf("%s %d. %s\n", mark, s.Crew.IndexOf(o.ID)+1, o.Label)
		}
		return nil
	}
	if arg == "none" {
		return a.svc.SetSignature("")
	}
	if i, err := parseIndex(arg); err == nil {
		if i >= len(s.Crew) {
			return fmt.Errorf("crew[%d]: %w", i, common.ErrorOutOfRange)
		}
		return a.svc.SetSignature(s.Crew[i].ID)
	}
	return a.svc.SetSignature(arg)
}

func (a *App) listCrew() {
	s := a.svc.Snapshot()
	for i, e := range s.Crew {
		rep := ""
		if e.IsRep {
			rep = " [REP]"
		}
		a.printf("%d. %s | %s | %s | %s%s\n", i+1, e.Name, e.Discord, e.Rank, e.Role, rep)
	}
}

// Crew edits the manifest: list, add, set N FIELD VALUE, rep N [on|off], rm N.
func (a *App) Crew(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		a.listCrew()
		return nil
	}

	switch args[0] {
	case "add":
		a.svc.AddCrew()
		a.printf("Added crew member %d\n", len(a.svc.Snapshot().Crew))
		return nil
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: crew set N name|discord|rank|role VALUE: %w", common.ErrorInvalidValue)
		}
		i, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		value := strings.Join(args[3:], " ")
		var p models.CrewPatch
		switch args[2] {
		case "name":
			p.Name = &value
		case "discord":
			p.Discord = &value
		case "rank":
			r := matchRank(value)
			p.Rank = &r
		case "role":
			r := matchRole(value)
			p.Role = &r
		default:
			return fmt.Errorf("crew field %q: %w", args[2], common.ErrorNotFound)
		}
		return a.svc.UpdateCrew(i, p)
	case "rep":
		if len(args) < 2 {
			return fmt.Errorf("usage: crew rep N [on|off]: %w", common.ErrorInvalidValue)
		}
		i, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		s := a.svc.Snapshot()
		if i >= len(s.Crew) {
			return fmt.Errorf("crew[%d]: %w", i, common.ErrorOutOfRange)
		}
		rep := !s.Crew[i].IsRep
		if len(args) > 2 {
			rep = args[2] == "on"
		}
		return a.svc.UpdateCrew(i, models.CrewPatch{IsRep: &rep})
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: crew rm N: %w", common.ErrorInvalidValue)
		}
		i, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		return a.svc.RemoveCrew(i)
	}
	return fmt.Errorf("crew %q: %w", args[0], common.ErrorNotFound)
}

// Event edits the event list: list, add, count N VALUE, desc N TEXT, rm N.
func (a *App) Event(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		for i, e := range models.ParseEvents(a.svc.Snapshot().Events) {
			a.printf("%d. %s\n", i+1, e)
		}
		return nil
	}
	if args[0] == "add" {
		a.svc.AddEvent()
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: event %s N: %w", args[0], common.ErrorInvalidValue)
	}
	i, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	value := strings.Join(args[2:], " ")

	switch args[0] {
	case "count":
		return a.svc.SetEventCount(i, value)
	case "desc":
		return a.svc.SetEventDescription(i, value)
	case "rm":
		return a.svc.RemoveEvent(i)
	}
	return fmt.Errorf("event %q: %w", args[0], common.ErrorNotFound)
}

// Dive edits the skirmish log: list, add, set N ours|enemy|outcome|notes VALUE, rm N.
func (a *App) Dive(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		for i, d := range a.svc.Snapshot().Dives {
			a.printf("%d. %s vs %s: %s %s\n", i+1, d.OurTeam, d.EnemyTeam, d.Outcome, d.Notes)
		}
		return nil
	}

	switch args[0] {
	case "add":
		a.svc.AddDive()
		a.printf("Added dive %d\n", len(a.svc.Snapshot().Dives))
		return nil
	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: dive set N ours|enemy|outcome|notes VALUE: %w", common.ErrorInvalidValue)
		}
		i, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		value := strings.Join(args[3:], " ")
		var p models.DivePatch
		switch args[2] {
		case "ours", "enemy":
			t, err := models.ParseTeam(value)
			if err != nil {
				return err
			}
			if args[2] == "ours" {
				p.OurTeam = &t
			} else {
				p.EnemyTeam = &t
			}
		case "outcome":
			o, err := models.ParseOutcome(value)
			if err != nil {
				return err
			}
			p.Outcome = &o
		case "notes":
			p.Notes = &value
		default:
			return fmt.Errorf("dive field %q: %w", args[2], common.ErrorNotFound)
		}
		return a.svc.UpdateDive(i, p)
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: dive rm N: %w", common.ErrorInvalidValue)
		}
		i, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		return a.svc.RemoveDive(i)
	}
	return fmt.Errorf("dive %q: %w", args[0], common.ErrorNotFound)
}

// Pages prints a terminal preview of the paginated document.
func (a *App) Pages(ctx context.Context) error {
	s := a.svc.Snapshot()
	plan, err := a.renderer.Plan(s)
	if err != nil {
		return err
	}
	return PreviewPages(a.out, s, plan, terminalWidth())
}

// Message prints the Discord message for the current log.
func (a *App) Message(ctx context.Context) error {
	a.println(discord.Format(a.svc.Snapshot()))
	return nil
}

// Copy puts the Discord message on the system clipboard.
func (a *App) Copy(ctx context.Context) error {
	if err := writeClipboard(discord.Format(a.svc.Snapshot())); err != nil {
		a.logger.Error(ctx, "error copying message", "err", err)
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	a.println("Message copied to clipboard")
	return nil
}

// Export renders every page and writes it as images or one PDF.
func (a *App) Export(ctx context.Context, format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	s := a.svc.Snapshot()
	plan, err := a.renderer.Plan(s)
	if err != nil {
		return err
	}

	res, err := a.exporter.Export(ctx, export.FromRender(a.renderer.Stage(s, plan)), f)
	for _, n := range res.Failed {
		a.printf("Page %d could not be exported\n", n)
	}
	if errors.Is(err, common.ErrNoPreview) || errors.Is(err, common.ErrNoPages) {
		a.println("Nothing exported:", err)
		return nil
	}
	for _, loc := range res.Files {
		a.println("Saved", loc)
	}
	return err
}

// Reset clears the log, keeping the mode.
func (a *App) Reset(ctx context.Context) error {
	a.svc.Reset()
	a.println("Log cleared")
	return nil
}

// Sample fills the log with demonstration data.
func (a *App) Sample(ctx context.Context) error {
	a.svc.LoadSample()
	return nil
}

// Save writes the log to a snapshot file; the format follows the extension.
func (a *App) Save(ctx context.Context, path string) error {
	if err := snapshot.Save(path, a.svc.Snapshot()); err != nil {
		return err
	}
	a.println("Saved", path)
	return nil
}

// Load replaces the log with a snapshot file.
func (a *App) Load(ctx context.Context, path string) error {
	s, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	a.svc.Replace(s)
	a.println("Loaded", path)
	return nil
}
