package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/dmitrijs2005/voyagelog/internal/common"
	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/render"
)

// Format selects the export output.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG, "image", "":
		return FormatPNG, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("format %q: %w", s, common.ErrUnsupportedFormat)
}

const (
	DefaultSettleDelay   = 300 * time.Millisecond
	DefaultDownloadDelay = 400 * time.Millisecond
)

// sleep waits for d or until ctx is done.
var sleep = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Surface is a page mounted off-screen.
type Surface interface {
	Capture(ctx context.Context) (image.Image, error)
	Release()
}

// Stage mounts the pages of one plan.
type Stage interface {
	State() models.LogState
	Plan() layout.Plan
	Mount(ctx context.Context, pg layout.Page) (Surface, error)
}

type renderStage struct {
	*render.Stage
}

func (s renderStage) Mount(ctx context.Context, pg layout.Page) (Surface, error) {
	surf, err := s.Stage.Mount(ctx, pg)
	if err != nil {
		return nil, err
	}
	return surf, nil
}

// FromRender adapts a render stage.
func FromRender(st *render.Stage) Stage {
	if st == nil {
		return nil
	}
	return renderStage{st}
}

// Options tunes the pauses between export steps.
type Options struct {
	SettleDelay   time.Duration // after mounting, before capture
	DownloadDelay time.Duration // after each image file
}

// Result reports what an export produced.
type Result struct {
	Files  []string // sink locations, in page order
	Failed []int    // 1-based numbers of pages that could not be exported
}

// Exporter drives the page-by-page export loop.
type Exporter struct {
	sink   Sink
	opts   Options
	logger logging.Logger
}

func NewExporter(sink Sink, opts Options, logger logging.Logger) *Exporter {
	return &Exporter{sink: sink, opts: opts, logger: logger}
}

// Export writes every page of stage in order. Pages are captured one at a
// time; a page that fails is logged and skipped. ErrNoPreview and
// ErrNoPages report that there was nothing to export and no file was
// written.
func (e *Exporter) Export(ctx context.Context, stage Stage, f Format) (Result, error) {
	if stage == nil {
		return Result{}, common.ErrNoPreview
	}
	plan := stage.Plan()
	if plan.Total() == 0 {
		return Result{}, common.ErrNoPages
	}

	log := e.logger.With("format", f, "pages", plan.Total())
	log.Info(ctx, "export started")

	var (
		res Result
		err error
	)
	switch f {
	case FormatPDF:
		res, err = e.exportPDF(ctx, stage, plan, log)
	case FormatPNG:
		res, err = e.exportImages(ctx, stage, plan, log)
	default:
		return Result{}, fmt.Errorf("format %q: %w", f, common.ErrUnsupportedFormat)
	}
	if err != nil {
		return res, err
	}
	log.Info(ctx, "export finished", "files", len(res.Files), "failed", len(res.Failed))
	return res, nil
}

// capture mounts pg, waits for it to settle and rasterizes it. The surface
// is released on every path.
func (e *Exporter) capture(ctx context.Context, stage Stage, pg layout.Page) (image.Image, error) {
	surf, err := stage.Mount(ctx, pg)
	if err != nil {
		return nil, fmt.Errorf("mount: %w", err)
	}
	defer surf.Release()

	if err := sleep(ctx, e.opts.SettleDelay); err != nil {
		return nil, err
	}
	img, err := surf.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return img, nil
}

func (e *Exporter) exportImages(ctx context.Context, stage Stage, plan layout.Plan, log logging.Logger) (Result, error) {
	var res Result
	s := stage.State()
	multi := plan.Total() > 1

	for _, pg := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		img, err := e.capture(ctx, stage, pg)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			log.Error(ctx, "page export failed", "page", pg.Index+1, "error", err)
			res.Failed = append(res.Failed, pg.Index+1)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			log.Error(ctx, "page encode failed", "page", pg.Index+1, "error", err)
			res.Failed = append(res.Failed, pg.Index+1)
			continue
		}

		name := ImageName(s, len(res.Files)+1, multi)
		loc, err := e.sink.Put(ctx, name, ContentTypePNG, buf.Bytes())
		if err != nil {
			log.Error(ctx, "page store failed", "page", pg.Index+1, "file", name, "error", err)
			res.Failed = append(res.Failed, pg.Index+1)
			continue
		}
		log.Debug(ctx, "page exported", "page", pg.Index+1, "file", loc)
		res.Files = append(res.Files, loc)

		if err := sleep(ctx, e.opts.DownloadDelay); err != nil {
			return res, err
		}
	}

	if len(res.Files) == 0 {
		return res, common.ErrNoPages
	}
	return res, nil
}

func (e *Exporter) exportPDF(ctx context.Context, stage Stage, plan layout.Plan, log logging.Logger) (Result, error) {
	var res Result
	doc := NewPDFWriter()

	for _, pg := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		img, err := e.capture(ctx, stage, pg)
		if err == nil {
			err = doc.AddPage(img)
		}
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			log.Error(ctx, "page export failed", "page", pg.Index+1, "error", err)
			res.Failed = append(res.Failed, pg.Index+1)
		}
	}

	if doc.Pages() == 0 {
		return res, common.ErrNoPages
	}
	data, err := doc.Bytes()
	if err != nil {
		return res, err
	}
	name := PDFName(stage.State())
	loc, err := e.sink.Put(ctx, name, ContentTypePDF, data)
	if err != nil {
		return res, fmt.Errorf("store %s: %w", name, err)
	}
	res.Files = append(res.Files, loc)
	return res, nil
}
