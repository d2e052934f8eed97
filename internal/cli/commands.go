package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/voyagelog/internal/buildinfo"
	"github.com/dmitrijs2005/voyagelog/internal/config"
	"github.com/dmitrijs2005/voyagelog/internal/logging"
	"github.com/spf13/cobra"
)

// session opens an App for one command and closes it afterwards, so pending
// edits are written before the process exits.
type session struct {
	cfg *config.Config
	in  io.Reader
}

func (s *session) run(fn func(ctx context.Context, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger := logging.NewTextLogger(cmd.ErrOrStderr(), s.cfg.LogLevel)

		app, err := NewApp(ctx, s.cfg, logger, s.in, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		runErr := fn(ctx, app, args)
		return errors.Join(runErr, app.Close(ctx))
	}
}

// NewRootCommand builds the voyagelog command tree. Without a subcommand it
// starts the interactive editor on in. Flags override cfg.
func NewRootCommand(cfg *config.Config, in io.Reader) *cobra.Command {
	s := &session{cfg: cfg, in: in}

	root := &cobra.Command{
		Use:   "voyagelog",
		Short: "Compose, paginate and export voyage logs",
		Long: `voyagelog edits a voyage log (ship, crew, loot, narrative and skirmish dives),
keeps it between runs, formats the Discord announcement and exports the
paginated document as PNG pages or a single PDF.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, app *App, _ []string) error {
			app.Run(ctx)
			return nil
		}),
	}
	cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newMessageCommand(s),
		newExportCommand(s),
		newPagesCommand(s),
		newImportCommand(s),
		newSnapshotCommand(s),
		newResetCommand(s),
		NewVersionCommand(),
	)
	return root
}

func newMessageCommand(s *session) *cobra.Command {
	var copyToClipboard bool
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Print the Discord message for the saved log",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, app *App, _ []string) error {
			if copyToClipboard {
				return app.Copy(ctx)
			}
			return app.Message(ctx)
		}),
	}
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "copy the message to the clipboard instead of printing it")
	return cmd
}

func newExportCommand(s *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the saved log as PNG pages or one PDF",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, app *App, _ []string) error {
			return app.Export(ctx, format)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "png", "output format: png or pdf")
	return cmd
}

func newPagesCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "Preview the page layout in the terminal",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, app *App, _ []string) error {
			return app.Pages(ctx)
		}),
	}
}

func newImportCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the saved log with a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(ctx context.Context, app *App, args []string) error {
			return app.Load(ctx, args[0])
		}),
	}
}

func newSnapshotCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Write the saved log to a TOML, YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(ctx context.Context, app *App, args []string) error {
			return app.Save(ctx, args[0])
		}),
	}
}

func newResetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the saved log, keeping its mode",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, app *App, _ []string) error {
			return app.Reset(ctx)
		}),
	}
}

// NewVersionCommand prints the build stamp.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of voyagelog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
