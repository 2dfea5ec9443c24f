package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"phimport/internal/app"
	"phimport/internal/config"
	"phimport/internal/domain"
	appErrors "phimport/internal/errors"
	"phimport/internal/infra/exif"
	"phimport/internal/infra/fs"
	"phimport/internal/logging"
	"phimport/internal/presentation"
	"phimport/internal/tui"
)

// errBatchFailed signals a batch that did not run to completion; its cause
// has already been reported.
var errBatchFailed = errors.New("import did not complete")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errBatchFailed) {
			fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:           "phimport [flags] [files...]",
		Short:         "Import pictures into folders named after their capture date",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "dotenv", ".env", err)
			}
			if err := cfg.Resolve(args); err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			return run(cmd.Context(), *cfg)
		},
	}
	cfg = config.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	filesystem := fs.NewOS()
	if cfg.DryRun {
		filesystem = fs.NewDryRun()
	}

	if info, err := filesystem.Stat(cfg.SourceDir); err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		return appErrors.Wrap(appErrors.NotFound, "stat", cfg.SourceDir, err)
	}

	files := cfg.Files
	if len(files) == 0 {
		listed, err := app.ListSources(filesystem, cfg.SourceDir)
		if err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "list", cfg.SourceDir, err)
		}
		files = listed
	}

	logger := logging.New(os.Stderr, cfg.Verbose)
	if cfg.Interactive {
		logger = logging.New(nil, cfg.Verbose)
	}
	defer logger.Sync()

	importer := &app.Importer{
		FS:     filesystem,
		Meta:   exif.Reader{Fs: filesystem.Fs},
		Logger: logger,
		Verify: cfg.Verify,
		DryRun: cfg.DryRun,
	}
	req := app.Request{
		SourceDir:    cfg.SourceDir,
		TargetDir:    cfg.TargetDir,
		Files:        files,
		Description:  cfg.Description,
		RenameToDate: cfg.RenameToDate,
	}

	if cfg.Interactive {
		return runInteractive(ctx, cfg, importer, req)
	}

	report, err := importer.Import(ctx, req)
	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
	printer.PrintReport(report)
	if err != nil || !report.Completed {
		return errBatchFailed
	}
	return nil
}

func runInteractive(ctx context.Context, cfg config.Config, importer *app.Importer, req app.Request) error {
	model := tui.NewModel(tui.Config{
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		DryRun:    cfg.DryRun,
		Verbose:   cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithContext(ctx))

	importer.OnOutcome = func(outcome domain.Outcome, current, total int) {
		program.Send(tui.OutcomeMsg{Outcome: outcome, Current: current, Total: total})
	}
	stop := importer.Start(ctx, req, func(report domain.BatchReport, err error) {
		program.Send(tui.DoneMsg{Report: report, Err: err})
	})

	final, err := program.Run()
	stop()
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	if m, ok := final.(tui.Model); ok && m.Phase != tui.PhaseDone {
		return errBatchFailed
	}
	return nil
}
