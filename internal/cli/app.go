package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/voyagelog/internal/config"
	"github.com/dmitrijs2005/voyagelog/internal/export"
	"github.com/dmitrijs2005/voyagelog/internal/layout"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/dmitrijs2005/voyagelog/internal/models"
	"github.com/dmitrijs2005/voyagelog/internal/persistence"
	"github.com/dmitrijs2005/voyagelog/internal/render"
	"github.com/dmitrijs2005/voyagelog/internal/repositories/kv"
	"github.com/dmitrijs2005/voyagelog/internal/services"
)

// App is one editor session: the log service, its persister and the
// render/export pipeline, bound to an input reader and an output writer.
type App struct {
	config    *config.Config
	logger    logging.Logger
	closer    io.Closer
	svc       services.LogService
	persister *persistence.Persister
	fonts     *render.FontSet
	renderer  *render.Renderer
	exporter  *export.Exporter
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens the configured store, hydrates the last session from it and
// wires the render and export pipeline.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	repo, closer, err := kv.Open(ctx, kv.Options{
		Driver:   c.StoreDriver,
		DSN:      c.DatabasePath,
		DiskvDir: c.DiskvDir,
	})
	if err != nil {
		logger.Error(ctx, "error opening store", "driver", c.StoreDriver, "err", err)
		return nil, err
	}

	state := persistence.Hydrate(ctx, repo, models.DefaultState(), logger)
	svc := services.NewLogService(state)

	p := persistence.NewPersister(repo, svc.Snapshot, c.SaveDebounce, logger)
	svc.SetNotifier(p)

	fonts := render.NewFontSet(c.FontsDir, logger)
	assets := render.NewAssets(c.AssetsDir, logger)
	r := render.NewRenderer(fonts, assets, layout.DefaultGeometry, c.CaptureScale, logger)

	exp := export.NewExporter(newSink(c), export.Options{
		SettleDelay:   c.SettleDelay,
		DownloadDelay: c.DownloadDelay,
	}, logger)

	return &App{
		config:    c,
		logger:    logger,
		closer:    closer,
		svc:       svc,
		persister: p,
		fonts:     fonts,
		renderer:  r,
		exporter:  exp,
		reader:    bufio.NewReader(in),
		out:       out,
	}, nil
}

func newSink(c *config.Config) export.Sink {
	if c.UseS3() {
		return export.NewS3Sink(export.S3Config{
			Bucket:       c.S3Bucket,
			Prefix:       c.S3Prefix,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
	}
	return export.NewDirSink(c.OutputDir)
}

// Close writes any pending edit and releases the store and fonts.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.persister.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}
	if err := a.fonts.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.closer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
