package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/voyagelog/internal/format"
	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"golang.org/x/image/draw"
)

// PlaceholderBody is drawn on an empty body page.
const PlaceholderBody = "Your log entry will appear here..."

var (
	inkColor       = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}
	pageNumColor   = color.NRGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xb3}
	parchmentColor = color.RGBA{R: 0xf1, G: 0xe1, B: 0xc0, A: 0xff}
)

// Page-local offsets, in page units.
const (
	titleMarginX    = 64  // each side of the heading
	titleMarginTop  = 48  // above the heading
	summaryTop      = 32  // above the summary columns
	columnGap       = 24  // between the two summary columns
	bottomPadding   = 114 // under the writing area
	iconSize        = 32
	iconGap         = 8
	lootColumnWidth = 200
	lootRowGap      = 16
	emblemOpacity   = 0x33
)

// Renderer rasterizes planned pages.
type Renderer struct {
	fonts    *FontSet
	assets   *Assets
	geometry layout.Geometry
	scale    float64
	logger   logging.Logger
}

func NewRenderer(fonts *FontSet, assets *Assets, g layout.Geometry, scale float64, logger logging.Logger) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{fonts: fonts, assets: assets, geometry: g, scale: scale, logger: logger}
}

// Geometry is the page geometry pages are drawn with.
func (r *Renderer) Geometry() layout.Geometry { return r.geometry }

// Scale is the ratio of bitmap pixels to page units.
func (r *Renderer) Scale() float64 { return r.scale }

// Measurer returns the body measurer for s, matching what Render draws.
func (r *Renderer) Measurer(s models.LogState) (layout.Measurer, error) {
	return r.fonts.Measurer(s.BodyFont, r.geometry)
}

// Plan paginates s with its body font and composes the page plan.
func (r *Renderer) Plan(s models.LogState) (layout.Plan, error) {
	m, err := r.Measurer(s)
	if err != nil {
		return layout.Plan{}, fmt.Errorf("measurer: %w", err)
	}
	return layout.PlanFor(s, r.geometry, m), nil
}

// Render draws page pg of plan for s.
func (r *Renderer) Render(ctx context.Context, s models.LogState, plan layout.Plan, pg layout.Page) (*image.RGBA, error) {
	c := newCanvas(r.geometry, r.scale, r.fonts)
	r.drawBackground(ctx, c, s)

	g := r.geometry
	top := g.Padding
	if pg.ShowTitle {
		if err := r.drawTitle(c, s); err != nil {
			return nil, fmt.Errorf("title: %w", err)
		}
		top += g.TitleHeight
	}

	var err error
	switch {
	case pg.IsBody:
		err = r.drawBody(c, s, pg, top)
	case plan.Mode == models.ModeSkirmish:
		err = r.drawSkirmishSummary(ctx, c, s, pg)
	default:
		err = r.drawPatrolSummary(ctx, c, s, pg)
	}
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pg.Index+1, err)
	}

	if plan.ShowPageNumbers() {
		t := textStyle{family: s.BodyFont, bold: true, size: 22, lineHeight: 1, color: pageNumColor}
		if err := c.rightAligned(t, g.PageWidth-g.Padding, g.PageHeight-58-t.line(), strconv.Itoa(pg.Index+1)); err != nil {
			return nil, fmt.Errorf("page number: %w", err)
		}
	}
	return c.dst, nil
}

func (r *Renderer) drawBackground(ctx context.Context, c *canvas, s models.LogState) {
	c.fill(parchmentColor)
	if img, ok := r.assets.Image(ctx, s.ParchmentAsset()); ok {
		c.cover(img, draw.Src)
	}

	emblem, ok := r.assets.Image(ctx, s.ShipAsset())
	if !ok {
		fallback := models.DefaultState()
		emblem, ok = r.assets.Image(ctx, fallback.ShipAsset())
	}
	if ok {
		g := r.geometry
		b := emblem.Bounds()
		w := g.PageWidth / 2
		h := w
		if b.Dx() > 0 {
			h = w * float64(b.Dy()) / float64(b.Dx())
		}
		c.faded(emblem, c.rect((g.PageWidth-w)/2, (g.PageHeight-h)/2, w, h), emblemOpacity)
	}

	if name := s.FrameAsset(); name != "" {
		if img, ok := r.assets.Image(ctx, name); ok {
			c.cover(img, draw.Over)
		}
	}
}

func (r *Renderer) drawTitle(c *canvas, s models.LogState) error {
	g := r.geometry
	t := textStyle{family: s.TitleFont, bold: true, size: 60, lineHeight: 1.3, color: inkColor}
	width := g.PageWidth - 2*g.Padding - 2*titleMarginX
	ls, err := c.wrap(t, s.DisplayTitle(), width)
	if err != nil {
		return err
	}
	top := g.Padding + titleMarginTop
	left := g.Padding + titleMarginX
	for _, l := range ls {
		w, err := c.measure(t, l)
		if err != nil {
			return err
		}
		if err := c.text(t, left+(width-w)/2, top, l); err != nil {
			return err
		}
		top += t.line()
	}
	return nil
}

func (r *Renderer) bodyStyle(s models.LogState) textStyle {
	g := r.geometry
	return textStyle{family: s.BodyFont, size: g.FontSize, lineHeight: g.LineHeight, color: inkColor}
}

func (r *Renderer) drawBody(c *canvas, s models.LogState, pg layout.Page, top float64) error {
	g := r.geometry
	text := pg.BodyText
	if text == "" {
		text = PlaceholderBody
	}
	_, err := c.paragraph(r.bodyStyle(s), g.Padding+g.BodyInset, top+g.BodyInset, g.ContentWidth(), text)
	return err
}

func headingStyle(s models.LogState) textStyle {
	return textStyle{family: s.TitleFont, bold: true, size: 30, lineHeight: 1.2, color: inkColor}
}

func listStyle(s models.LogState) textStyle {
	return textStyle{family: s.BodyFont, size: 20, lineHeight: 1.4, color: inkColor}
}

// columns returns the left edge and width of the two summary columns.
func (r *Renderer) columns() (left, right, width float64) {
	g := r.geometry
	inner := g.PageWidth - 2*g.Padding - g.BodyInset
	width = (inner - columnGap) / 2
	left = g.Padding + g.BodyInset
	return left, left + width + columnGap, width
}

// ManifestLines is the crew manifest as printed on the last page.
func ManifestLines(crew models.Manifest) []string {
	view := crew.DisplayView()
	if len(view) == 0 {
		return []string{"No crew assigned"}
	}
	out := make([]string, 0, len(view))
	for _, e := range view {
		line := string(e.Rank) + " " + e.Name
		if e.IsRep {
			line += " [REP]"
		}
		out = append(out, line+" - "+string(e.Role))
	}
	return out
}

func (r *Renderer) drawManifest(c *canvas, s models.LogState, x, top, width float64) error {
	h := headingStyle(s)
	if err := c.text(h, x, top, "Crew Manifest"); err != nil {
		return err
	}
	top += h.line() + 8
	for _, l := range ManifestLines(s.Crew) {
		bottom, err := c.paragraph(listStyle(s), x, top, width, l)
		if err != nil {
			return err
		}
		top = bottom + 4
	}
	return nil
}

// drawSignature right-aligns the host block so it ends at bottom.
func (r *Renderer) drawSignature(c *canvas, s models.LogState, bottom float64) error {
	name, sub, ok := s.SignatureLines()
	if !ok {
		return nil
	}
	g := r.geometry
	right := g.PageWidth - g.Padding
	nameStyle := textStyle{family: s.TitleFont, bold: true, size: 48, lineHeight: 1.1, color: inkColor}
	subStyle := textStyle{family: s.BodyFont, size: 30, lineHeight: 1.2, color: inkColor}

	subTop := bottom - subStyle.line()
	if err := c.rightAligned(subStyle, right, subTop, sub); err != nil {
		return err
	}
	return c.rightAligned(nameStyle, right, subTop-8-nameStyle.line(), name)
}

// LootItem is one loot figure on a patrol summary page.
type LootItem struct {
	Icon  string
	Label string
	Value string
}

// LootItems lists the patrol loot in display order. Ancient coins and fish
// only appear when positive.
func LootItems(s models.LogState) []LootItem {
	items := []LootItem{
		{"gold.webp", "Gold", format.Thousands(s.Gold)},
		{"doubloon.webp", "Doubloons", format.Thousands(s.Doubloons)},
	}
	if format.Positive(s.AncientCoins) {
		items = append(items, LootItem{"ANCI.webp", "Ancient Coins", format.Thousands(s.AncientCoins)})
	}
	if format.Positive(s.FishCaught) {
		items = append(items, LootItem{"FISH.webp", "Fish", format.Thousands(s.FishCaught)})
	}
	return items
}

func (r *Renderer) drawLoot(ctx context.Context, c *canvas, s models.LogState, bottom float64) error {
	g := r.geometry
	t := textStyle{family: s.BodyFont, size: 30, lineHeight: 1.2, color: inkColor}
	items := LootItems(s)
	rows := (len(items) + 1) / 2
	rowHeight := t.line()
	top := bottom - float64(rows)*rowHeight - float64(rows-1)*lootRowGap
	left := g.Padding + 16

	for i, it := range items {
		x := left + float64(i%2)*lootColumnWidth
		y := top + float64(i/2)*(rowHeight+lootRowGap)
		value := it.Value
		if icon, ok := r.assets.Image(ctx, it.Icon); ok {
			c.drawImage(icon, c.rect(x, y+(rowHeight-iconSize)/2, iconSize, iconSize))
			x += iconSize + iconGap
		} else {
			value = it.Label + " " + value
		}
		if err := c.text(t, x, y, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawPatrolSummary(ctx context.Context, c *canvas, s models.LogState, pg layout.Page) error {
	g := r.geometry
	left, right, width := r.columns()
	top := g.Padding + summaryTop

	if pg.ShowPatrolSummary {
		h := headingStyle(s)
		if err := c.text(h, left, top, "Notable Events"); err != nil {
			return err
		}
		y := top + h.line() + 8
		for _, ev := range models.EventLines(s.Events) {
			bottom, err := c.paragraph(listStyle(s), left, y, width, ev)
			if err != nil {
				return err
			}
			y = bottom
		}
	}
	if pg.ShowManifest {
		if err := r.drawManifest(c, s, right, top, width); err != nil {
			return err
		}
	}

	bottom := g.PageHeight - bottomPadding
	if pg.ShowPatrolSummary {
		if err := r.drawLoot(ctx, c, s, bottom); err != nil {
			return err
		}
	}
	if pg.ShowSignature {
		return r.drawSignature(c, s, bottom)
	}
	return nil
}

// DiveLine is the heading line of dive n (1-based) without team icons.
func DiveLine(n int, d models.DiveEntry) string {
	return fmt.Sprintf("%d. %s vs %s (%s)", n, d.OurTeam, d.EnemyTeam, d.Outcome)
}

func teamIcon(t models.Team) string {
	return strings.ToLower(string(t)) + ".webp"
}

func (r *Renderer) drawDive(ctx context.Context, c *canvas, s models.LogState, n int, d models.DiveEntry, x, top, width float64) (float64, error) {
	line := listStyle(s)
	line.bold = true
	line.lineHeight = 1.6

	parts := []struct {
		text string
		icon string
	}{
		{text: strconv.Itoa(n) + "."},
		{icon: teamIcon(d.OurTeam)},
		{text: string(d.OurTeam)},
		{text: "vs"},
		{text: string(d.EnemyTeam)},
		{icon: teamIcon(d.EnemyTeam)},
		{text: "(" + string(d.Outcome) + ")"},
	}
	cx := x
	for _, p := range parts {
		if p.icon != "" {
			if img, ok := r.assets.Image(ctx, p.icon); ok {
				c.drawImage(img, c.rect(cx, top+(line.line()-iconSize)/2, iconSize, iconSize))
				cx += iconSize + iconGap
			}
			continue
		}
		if err := c.text(line, cx, top, p.text); err != nil {
			return top, err
		}
		w, err := c.measure(line, p.text)
		if err != nil {
			return top, err
		}
		cx += w + iconGap
	}
	bottom := top + line.line()

	if d.Notes != "" {
		var err error
		bottom, err = c.paragraph(listStyle(s), x+16, bottom, width-16, d.Notes)
		if err != nil {
			return top, err
		}
	}
	return bottom + 12, nil
}

func (r *Renderer) drawSkirmishSummary(ctx context.Context, c *canvas, s models.LogState, pg layout.Page) error {
	g := r.geometry
	left, right, width := r.columns()
	top := g.Padding + g.BodyInset
	if !pg.ShowManifest {
		width = g.PageWidth - 2*g.Padding - 2*g.BodyInset
	}

	if len(pg.Dives) > 0 {
		h := headingStyle(s)
		if err := c.text(h, left, top, "Skirmish Dives"); err != nil {
			return err
		}
		y := top + h.line() + 8 + g.BodyInset
		for i, d := range pg.Dives {
			var err error
			y, err = r.drawDive(ctx, c, s, pg.DiveOffset+i+1, d, left+g.BodyInset, y, width-g.BodyInset)
			if err != nil {
				return err
			}
		}
	}
	if pg.ShowManifest {
		if err := r.drawManifest(c, s, right, top, width); err != nil {
			return err
		}
	}
	if pg.ShowSignature {
		return r.drawSignature(c, s, g.PageHeight-bottomPadding)
	}
	return nil
}
