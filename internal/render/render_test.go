package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestRenderer(t *testing.T, assetsDir string, scale float64) *Renderer {
	t.Helper()
	logger := logging.Discard()
	fonts := NewFontSet(t.TempDir(), logger)
	t.Cleanup(func() { _ = fonts.Close() })
	return NewRenderer(fonts, NewAssets(assetsDir, logger), layout.DefaultGeometry, scale, logger)
}

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, c)
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, []string{"JimNightshade-Bold.ttf", "JimNightshade-Regular.ttf", "JimNightshade.ttf"},
		fileNames(models.FontJimNightshade, true))
	assert.Equal(t, []string{"Charm-Regular.ttf", "Charm.ttf"}, fileNames(models.FontCharm, false))
}

func TestFontSet_FallsBackToGoFonts(t *testing.T) {
	var buf bytes.Buffer
	fs := NewFontSet(t.TempDir(), logging.NewTextLogger(&buf, "debug"))

	face, err := fs.Face(models.FontNiconne, false, 30)
	require.NoError(t, err)
	again, err := fs.Face(models.FontNiconne, false, 30)
	require.NoError(t, err)
	assert.Same(t, face, again)
	assert.Contains(t, buf.String(), "font not found")

	adv, err := fs.Advance(models.FontNiconne, false, 30)
	require.NoError(t, err)
	assert.Greater(t, adv("abc"), adv("a"))
	assert.Zero(t, adv(""))
}

func TestFontSet_LoadsFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Charm-Regular.ttf"), goregular.TTF, 0o644))

	var buf bytes.Buffer
	fs := NewFontSet(dir, logging.NewTextLogger(&buf, "debug"))
	_, err := fs.Face(models.FontCharm, false, 30)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "font not found")
}

func TestFontSet_BadFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Felipa.ttf"), []byte("not a font"), 0o644))

	var buf bytes.Buffer
	fs := NewFontSet(dir, logging.NewTextLogger(&buf, "debug"))
	_, err := fs.Face(models.FontFelipa, false, 30)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bad font file")
}

func TestFontSet_MeasurerMatchesGeometry(t *testing.T) {
	fs := NewFontSet("", logging.Discard())
	m, err := fs.Measurer(models.FontCharm, layout.DefaultGeometry)
	require.NoError(t, err)

	assert.InDelta(t, 42.0, m.Height("short line"), 1e-9)
	long := strings.Repeat("voyage ", 40)
	assert.Greater(t, m.Height(long), 42.0)
}

func TestCoverSource(t *testing.T) {
	dst := image.Rect(0, 0, 100, 200)
	assert.Equal(t, image.Rect(50, 0, 150, 200), coverSource(image.Rect(0, 0, 200, 200), dst))
	assert.Equal(t, image.Rect(0, 0, 100, 200), coverSource(image.Rect(0, 0, 100, 200), dst))
	assert.Equal(t, image.Rect(0, 50, 50, 150), coverSource(image.Rect(0, 0, 50, 200), dst))
	assert.Equal(t, image.Rect(0, 0, 0, 0), coverSource(image.Rect(0, 0, 0, 0), dst))
}

func TestManifestLines(t *testing.T) {
	assert.Equal(t, []string{"No crew assigned"}, ManifestLines(models.BlankManifest()))

	got := ManifestLines(models.SampleCrew())
	require.Len(t, got, 5)
	assert.Equal(t, "Admiral John Blackhook - Helm", got[0])
	assert.Equal(t, "Marine Erik Saltbeard [REP] - Helm", got[len(got)-2])
}

func TestLootItems(t *testing.T) {
	s := models.DefaultState()
	items := LootItems(s)
	require.Len(t, items, 2)
	assert.Equal(t, LootItem{Icon: "gold.webp", Label: "Gold", Value: "0"}, items[0])

	s.Gold = "5250"
	s.AncientCoins = "25"
	s.FishCaught = "0"
	items = LootItems(s)
	require.Len(t, items, 3)
	assert.Equal(t, "5,250", items[0].Value)
	assert.Equal(t, "ANCI.webp", items[2].Icon)
}

func TestDiveLine(t *testing.T) {
	d := models.DiveEntry{OurTeam: models.TeamReaper, EnemyTeam: models.TeamAthena, Outcome: models.OutcomeLoss}
	assert.Equal(t, "4. Reaper vs Athena (loss)", DiveLine(4, d))
	assert.Equal(t, "reaper.webp", teamIcon(models.TeamReaper))
}

func TestRender_CanvasSizeAndFallbackBackground(t *testing.T) {
	r := newTestRenderer(t, t.TempDir(), 2)
	s := models.DefaultState()
	plan, err := r.Plan(s)
	require.NoError(t, err)
	require.Equal(t, 2, plan.Total())

	for _, pg := range plan.Pages {
		img, err := r.Render(context.Background(), s, plan, pg)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 1632, 2380), img.Bounds())
		assert.Equal(t, parchmentColor, img.RGBAAt(0, 0))
	}
}

func TestRender_UsesParchmentAsset(t *testing.T) {
	assets := t.TempDir()
	writePNG(t, filepath.Join(assets, "parchment3.png"), color.RGBA{R: 0xff, A: 0xff})

	r := newTestRenderer(t, assets, 1)
	s := models.DefaultState()
	s.Parchment = 3
	s.Frame = 0
	plan, err := r.Plan(s)
	require.NoError(t, err)

	img, err := r.Render(context.Background(), s, plan, plan.Pages[0])
	require.NoError(t, err)
	px := img.RGBAAt(1, 1)
	assert.Greater(t, px.R, uint8(0xf0))
	assert.Less(t, px.G, uint8(0x10))
}

func TestRender_DrawsTextOnEveryPage(t *testing.T) {
	r := newTestRenderer(t, t.TempDir(), 1)
	s := models.DefaultState()
	s.Mode = models.ModeSkirmish
	models.ApplySample(&s)
	plan, err := r.Plan(s)
	require.NoError(t, err)

	for _, pg := range plan.Pages {
		img, err := r.Render(context.Background(), s, plan, pg)
		require.NoError(t, err)
		assert.True(t, hasInk(img), "page %d has no text", pg.Index)
	}
}

func hasInk(img *image.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if px := img.RGBAAt(x, y); px.R < 0x80 && px.G < 0x80 && px.B < 0x80 {
				return true
			}
		}
	}
	return false
}

func TestStage_MountCaptureRelease(t *testing.T) {
	r := newTestRenderer(t, t.TempDir(), 1)
	s := models.DefaultState()
	plan, err := r.Plan(s)
	require.NoError(t, err)
	st := r.Stage(s, plan)
	ctx := context.Background()

	surf, err := st.Mount(ctx, plan.Pages[0])
	require.NoError(t, err)
	assert.Equal(t, 1, st.Live())

	img, err := surf.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, 816, img.Bounds().Dx())

	surf.Release()
	surf.Release()
	assert.Equal(t, 0, st.Live())

	_, err = surf.Capture(ctx)
	assert.ErrorIs(t, err, errReleased)
}

func TestStage_SnapshotIsIsolated(t *testing.T) {
	r := newTestRenderer(t, t.TempDir(), 1)
	s := models.DefaultState()
	plan, err := r.Plan(s)
	require.NoError(t, err)

	st := r.Stage(s, plan)
	s.Crew[0].Name = "changed"
	assert.Empty(t, st.State().Crew[0].Name)
}

func TestStage_MountHonoursCancellation(t *testing.T) {
	r := newTestRenderer(t, t.TempDir(), 1)
	s := models.DefaultState()
	plan, err := r.Plan(s)
	require.NoError(t, err)
	st := r.Stage(s, plan)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = st.Mount(ctx, plan.Pages[0])
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, st.Live())
}
