package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	stage *fakeStage
	page  layout.Page
}

func (s *fakeSurface) Capture(ctx context.Context) (image.Image, error) {
	s.stage.events = append(s.stage.events, "capture")
	if err := s.stage.failOn[s.page.Index]; err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 12))
	img.Set(0, 0, color.RGBA{R: uint8(s.page.Index), A: 0xff})
	return img, nil
}

func (s *fakeSurface) Release() {
	s.stage.events = append(s.stage.events, "release")
	s.stage.live--
}

type fakeStage struct {
	state  models.LogState
	plan   layout.Plan
	failOn map[int]error
	live   int
	events []string
}

func newFakeStage(pages int) *fakeStage {
	s := models.DefaultState()
	s.Ship = models.ShipNott
	s.VoyageNumber = "3"
	bodies := make([]string, pages-1)
	return &fakeStage{state: s, plan: layout.Compose(s, bodies), failOn: map[int]error{}}
}

func (f *fakeStage) State() models.LogState { return f.state }
func (f *fakeStage) Plan() layout.Plan      { return f.plan }

func (f *fakeStage) Mount(ctx context.Context, pg layout.Page) (Surface, error) {
	f.events = append(f.events, "mount")
	f.live++
	return &fakeSurface{stage: f, page: pg}, nil
}

type memSink struct {
	mu    sync.Mutex
	names []string
	data  map[string][]byte
	types map[string]string
	err   error
}

func newMemSink() *memSink {
	return &memSink{data: map[string][]byte{}, types: map[string]string{}}
}

func (m *memSink) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.names = append(m.names, name)
	m.data[name] = data
	m.types[name] = contentType
	return "mem://" + name, nil
}

// stubSleep records requested delays without waiting.
func stubSleep(t *testing.T, stage *fakeStage) *[]time.Duration {
	t.Helper()
	var got []time.Duration
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error {
		got = append(got, d)
		if stage != nil {
			stage.events = append(stage.events, "sleep "+d.String())
		}
		return ctx.Err()
	}
	t.Cleanup(func() { sleep = orig })
	return &got
}

var testOpts = Options{SettleDelay: 300 * time.Millisecond, DownloadDelay: 400 * time.Millisecond}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestExport_ImagesInPageOrder(t *testing.T) {
	stage := newFakeStage(3)
	stubSleep(t, stage)
	sink := newMemSink()

	res, err := NewExporter(sink, testOpts, logging.Discard()).Export(context.Background(), stage, FormatPNG)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"USS Nott - 3rd Voyage Log - Page 1.png",
		"USS Nott - 3rd Voyage Log - Page 2.png",
		"USS Nott - 3rd Voyage Log - Page 3.png",
	}, sink.names)
	assert.Len(t, res.Files, 3)
	assert.Empty(t, res.Failed)
	assert.Equal(t, ContentTypePNG, sink.types[sink.names[0]])
	assert.Zero(t, stage.live)

	assert.Equal(t, []string{
		"mount", "sleep 300ms", "capture", "release", "sleep 400ms",
		"mount", "sleep 300ms", "capture", "release", "sleep 400ms",
		"mount", "sleep 300ms", "capture", "release", "sleep 400ms",
	}, stage.events)
}

func TestExport_SinglePageHasNoSuffix(t *testing.T) {
	stage := newFakeStage(1)
	stage.plan.Pages = stage.plan.Pages[:1]
	stubSleep(t, nil)
	sink := newMemSink()

	_, err := NewExporter(sink, testOpts, logging.Discard()).Export(context.Background(), stage, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, []string{"USS Nott - 3rd Voyage Log.png"}, sink.names)
}

func TestExport_FailedPageIsSkippedAndReleased(t *testing.T) {
	stage := newFakeStage(3)
	stage.failOn[1] = errors.New("canvas tainted")
	stubSleep(t, nil)
	sink := newMemSink()

	res, err := NewExporter(sink, testOpts, logging.Discard()).Export(context.Background(), stage, FormatPNG)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, res.Failed)
	// The suffix counts exported images, so the third page becomes Page 2.
	assert.Equal(t, []string{
		"USS Nott - 3rd Voyage Log - Page 1.png",
		"USS Nott - 3rd Voyage Log - Page 2.png",
	}, sink.names)
	assert.Zero(t, stage.live)
}

func TestExport_SinkFailureIsLoggedAndSkipped(t *testing.T) {
	stage := newFakeStage(2)
	stubSleep(t, nil)
	sink := newMemSink()
	sink.err = errors.New("disk full")

	res, err := NewExporter(sink, testOpts, logging.Discard()).Export(context.Background(), stage, FormatPNG)
	assert.ErrorIs(t, err, common.ErrNoPages)
	assert.Equal(t, []int{1, 2}, res.Failed)
	assert.Zero(t, stage.live)
}

func TestExport_Preconditions(t *testing.T) {
	ex := NewExporter(newMemSink(), testOpts, logging.Discard())

	_, err := ex.Export(context.Background(), nil, FormatPNG)
	assert.ErrorIs(t, err, common.ErrNoPreview)

	_, err = ex.Export(context.Background(), FromRender(nil), FormatPNG)
	assert.ErrorIs(t, err, common.ErrNoPreview)

	empty := newFakeStage(1)
	empty.plan.Pages = nil
	_, err = ex.Export(context.Background(), empty, FormatPDF)
	assert.ErrorIs(t, err, common.ErrNoPages)

	_, err = ex.Export(context.Background(), newFakeStage(1), Format("gif"))
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestExport_AllPagesFailWritesNothing(t *testing.T) {
	stage := newFakeStage(2)
	boom := errors.New("boom")
	stage.failOn[0], stage.failOn[1] = boom, boom
	stubSleep(t, nil)
	sink := newMemSink()

	for _, f := range []Format{FormatPNG, FormatPDF} {
		_, err := NewExporter(sink, testOpts, logging.Discard()).Export(context.Background(), stage, f)
		assert.ErrorIs(t, err, common.ErrNoPages, string(f))
	}
	assert.Empty(t, sink.names)
	assert.Zero(t, stage.live)
}

func TestExport_PDFIsOneFile(t *testing.T) {
	stage := newFakeStage(3)
	stage.failOn[2] = errors.New("boom")
	delays := stubSleep(t, nil)
	sink := newMemSink()

	res, err := NewExporter(sink, testOpts, logging.Discard()).Export(context.Background(), stage, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, []string{"USS Nott - 3rd Voyage Log.pdf"}, sink.names)
	assert.Equal(t, []int{3}, res.Failed)
	assert.Equal(t, ContentTypePDF, sink.types[sink.names[0]])
	assert.Equal(t, "%PDF", string(sink.data[sink.names[0]][:4]))
	// Only settle delays: the document is stored once at the end.
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}, *delays)
}

func TestExport_CancellationStopsLoop(t *testing.T) {
	stage := newFakeStage(3)
	ctx, cancel := context.WithCancel(context.Background())
	orig := sleep
	sleep = func(c context.Context, d time.Duration) error {
		if d == testOpts.DownloadDelay {
			cancel()
		}
		return c.Err()
	}
	t.Cleanup(func() { sleep = orig })
	sink := newMemSink()

	res, err := NewExporter(sink, testOpts, logging.Discard()).Export(ctx, stage, FormatPNG)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, res.Files, 1)
	assert.Zero(t, stage.live)
}

func TestSleep_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleep(context.Background(), time.Millisecond))
}

func TestNames(t *testing.T) {
	s := models.DefaultState()
	assert.Equal(t, "USS Gullinbursti - nth Voyage Log", BaseName(s))

	s.VoyageNumber = "1"
	assert.Equal(t, "USS Gullinbursti - 1st Voyage Log.png", ImageName(s, 1, false))
	assert.Equal(t, "USS Gullinbursti - 1st Voyage Log - Page 4.png", ImageName(s, 4, true))
	assert.Equal(t, "USS Gullinbursti - 1st Voyage Log.pdf", PDFName(s))

	s.VoyageNumber = "12"
	assert.Equal(t, "USS Gullinbursti - 12th Voyage Log.pdf", PDFName(s))
}

func TestDirSink_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := NewDirSink(dir)

	loc, err := sink.Put(context.Background(), "a/b.png", ContentTypePNG, []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a-b.png"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestExport_WithRenderer(t *testing.T) {
	stubSleep(t, nil)
	logger := logging.Discard()
	r := render.NewRenderer(render.NewFontSet("", logger), render.NewAssets(t.TempDir(), logger), layout.DefaultGeometry, 1, logger)

	s := models.DefaultState()
	s.Mode = models.ModeSkirmish
	models.ApplySample(&s)
	plan, err := r.Plan(s)
	require.NoError(t, err)
	st := r.Stage(s, plan)

	dir := t.TempDir()
	res, err := NewExporter(NewDirSink(dir), testOpts, logger).Export(context.Background(), FromRender(st), FormatPDF)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, filepath.Join(dir, "USS Gullinbursti - 3rd Voyage Log.pdf"), res.Files[0])
	assert.Zero(t, st.Live())
}
