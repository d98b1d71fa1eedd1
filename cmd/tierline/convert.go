package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/format"
)

// stdio is the path that means stdin or stdout.
const stdio = "-"

func newConvertCmd(g *globals) *cobra.Command {
	var (
		to        string
		tiers     []string
		merge     []string
		fillGaps  bool
		skipEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert an annotation file to another format",
		Long: `Convert reads any supported annotation file and writes it in another
format. The output format comes from --to, then the output extension,
then the export.format setting. Use - for stdin or stdout. Files named
with --merge are imported after the input; tiers the input already
declares are kept.`,
		Example: `  tierline convert take1.eaf take1.TextGrid
  tierline convert take1.TextGrid - --to csv --tier 'phon*'
  tierline convert take1.TextGrid take1.short.TextGrid --to short --fill-gaps
  tierline convert words.TextGrid all.json --merge tones.eaf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			kind, err := outputKind(to, output, g.cfg.ExportKind())
			if err != nil {
				return err
			}
			if !kind.CanWrite() {
				return &format.UnsupportedFormatError{Name: string(kind), Reason: "read only"}
			}

			if cmd.Flags().Changed("skip-empty") {
				g.cfg.Import.SkipEmpty = skipEmpty
			}
			e := g.newEngine()
			res, err := loadInput(e, cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			for _, path := range merge {
				if err := mergeInput(e, path); err != nil {
					return err
				}
			}

			opts := e.Settings().Export
			if len(tiers) > 0 {
				opts.Tiers = tiers
			}
			if cmd.Flags().Changed("fill-gaps") {
				opts.FillGaps = fillGaps
			}
			data, err := e.ExportWith(kind, opts)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
				return err
			}
			g.log.WithField("file", output).Info("converted %s (%s) to %s", input, res.Format, kind)
			return nil
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "output format: "+strings.Join(writableKinds(), ", "))
	cmd.Flags().StringArrayVar(&tiers, "tier", nil, "only export tiers matching this glob (repeatable)")
	cmd.Flags().StringArrayVar(&merge, "merge", nil, "import another annotation file before writing (repeatable)")
	cmd.Flags().BoolVar(&fillGaps, "fill-gaps", false, "pad interval tiers so they cover the whole timeline")
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty", false, "drop annotations with empty labels on import")
	return cmd
}

// outputKind resolves the output format from the flag, the output path and
// the configured default, in that order.
func outputKind(to, path string, fallback format.Kind) (format.Kind, error) {
	if to != "" {
		return format.ParseKind(to)
	}
	if path != stdio {
		if kind, ok := format.KindForPath(path); ok {
			return kind, nil
		}
	}
	return fallback, nil
}

// writableKinds names the formats convert can produce.
func writableKinds() []string {
	var names []string
	for _, k := range format.Kinds() {
		if k.CanWrite() {
			names = append(names, k.String())
		}
	}
	return names
}

// loadInput reads path, or stdin for "-", as the engine's baseline.
func loadInput(e *engine.Engine, stdin io.Reader, path string) (engine.ImportResult, error) {
	var (
		raw []byte
		err error
	)
	if path == stdio {
		raw, err = io.ReadAll(stdin)
		path = "stdin"
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return engine.ImportResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := e.Load(raw, path, 0)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// mergeInput imports path into the loaded timeline.
func mergeInput(e *engine.Engine, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := e.Import(raw, path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == stdio {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
