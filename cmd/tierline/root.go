package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/tierline/internal/config"
	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/logging"
)

// globals holds state shared by every subcommand. It is filled in by the
// root command's PersistentPreRunE.
type globals struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *logging.Logger

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "tierline",
		Short: "Edit and convert time-aligned speech annotations",
		Long: `Tierline edits tiers of time-aligned annotations over a recording.
It reads Praat TextGrid (long and short form), ELAN EAF and its own JSON
schema, and writes TextGrid, JSON and CSV.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "settings file (default: $TIERLINE_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides settings)")

	root.AddCommand(newConvertCmd(g))
	root.AddCommand(newInspectCmd(g))
	root.AddCommand(newEditCmd(g))
	root.AddCommand(newKeysCmd(g))
	return root
}

// setup loads settings and builds the logger.
func (g *globals) setup() error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if g.logLevel != "" {
		if _, ok := logging.ParseLevel(g.logLevel); !ok {
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", g.logLevel)
		}
		cfg.Logging.Level = g.logLevel
	}
	g.cfg = cfg

	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel()
	lc.Output = g.stderr
	g.log = logging.New(lc)
	if cfg.Path != "" {
		g.log.Debug("settings loaded from %s", cfg.Path)
	}
	return nil
}

// newEngine returns an engine configured from the loaded settings.
func (g *globals) newEngine() *engine.Engine {
	return engine.New(
		engine.WithSettings(g.cfg.ToEngineSettings()),
		engine.WithLogger(g.log.WithComponent("engine")),
	)
}
