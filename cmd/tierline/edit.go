package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/tierline/internal/app"
	"github.com/dshills/tierline/internal/logging"
	"github.com/dshills/tierline/internal/renderer/backend"
)

// errNotTerminal is returned by edit when stdin or stdout is redirected.
var errNotTerminal = errors.New("edit needs an interactive terminal")

func newEditCmd(g *globals) *cobra.Command {
	var (
		duration float64
		tiers    []string
		imports  []string
		watch    bool
		logFile  string
	)

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Annotate a recording in the terminal",
		Long: `Edit opens an annotation file in the terminal timeline editor. A file
that does not exist yet is created on the first save. Tiers named with
--tier are declared if missing; append :point for a point tier. Files
named with --import are merged into the timeline; each merge can be undone.`,
		Example: `  tierline edit take1.TextGrid --duration 12.5 --tier words --tier tones:point
  tierline edit take1.eaf --watch
  tierline edit take1.TextGrid --import tones.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			if duration < 0 {
				return fmt.Errorf("invalid duration %v", duration)
			}

			// The terminal owns stdout and stderr while the session runs.
			log := logging.Nop()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				log = logging.New(logging.Config{Level: g.cfg.LogLevel(), Output: f, Prefix: "tierline"})
			}

			return runEditor(app.Options{
				Path:        args[0],
				Duration:    duration,
				Tiers:       tiers,
				Imports:     imports,
				Config:      g.cfg,
				WatchConfig: watch,
				Logger:      log,
			})
		},
	}

	cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "recording length in seconds (default: extent of the file)")
	cmd.Flags().StringArrayVar(&tiers, "tier", nil, "declare a tier, as name or name:point (repeatable)")
	cmd.Flags().StringArrayVar(&imports, "import", nil, "merge another annotation file into the timeline (repeatable)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload settings and keymap files when they change")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append session logs to this file")
	return cmd
}

func runEditor(opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	terminal, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(terminal); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
