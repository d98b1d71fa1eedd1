package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/dshills/tierline/internal/engine"
	"github.com/dshills/tierline/internal/engine/annotation"
	"github.com/dshills/tierline/internal/format"
)

// fileSummary describes one annotation file.
type fileSummary struct {
	File     string        `json:"file"`
	Format   format.Kind   `json:"format"`
	Duration float64       `json:"duration"`
	Tiers    []tierSummary `json:"tiers"`
	Warnings []string      `json:"warnings,omitempty"`
}

type tierSummary struct {
	Name     string          `json:"name"`
	Type     annotation.Type `json:"type"`
	Count    int             `json:"count"`
	Labelled int             `json:"labelled"`
	First    float64         `json:"first"`
	Last     float64         `json:"last"`
}

func newInspectCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "List the tiers of annotation files",
		Long: `Inspect prints each file's detected format, duration and tiers with
their annotation counts. Labelled counts exclude empty labels.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := make([]fileSummary, 0, len(args))
			for _, path := range args {
				e := g.newEngine()
				res, err := loadInput(e, cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				summaries = append(summaries, summarize(e, path, res))
			}

			if asJSON {
				raw, err := json.Marshal(summaries)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(pretty.Pretty(raw))
				return err
			}
			return printSummaries(cmd.OutOrStdout(), summaries)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print summaries as JSON")
	return cmd
}

func summarize(e *engine.Engine, path string, res engine.ImportResult) fileSummary {
	s := fileSummary{
		File:     path,
		Format:   res.Format,
		Duration: e.Duration(),
		Tiers:    []tierSummary{},
		Warnings: res.Warnings,
	}
	for _, t := range e.Tiers() {
		ts := tierSummary{Name: t.Name, Type: t.Type}
		list := e.InTier(t.Name)
		ts.Count = len(list)
		for _, a := range list {
			if a.Text != "" {
				ts.Labelled++
			}
		}
		if len(list) > 0 {
			ts.First = list[0].Start
			for _, a := range list {
				ts.Last = max(ts.Last, a.End)
			}
		}
		s.Tiers = append(s.Tiers, ts)
	}
	return s
}

func printSummaries(w io.Writer, summaries []fileSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range summaries {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.3fs\n", s.File, s.Format, s.Duration)
		fmt.Fprintln(tw, "  TIER\tTYPE\tCOUNT\tLABELLED\tSPAN")
		for _, t := range s.Tiers {
			span := "-"
			if t.Count > 0 {
				span = fmt.Sprintf("%.3f-%.3f", t.First, t.Last)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\t%s\n", t.Name, t.Type, t.Count, t.Labelled, span)
		}
		for _, w := range s.Warnings {
			fmt.Fprintf(tw, "  warning: %s\n", w)
		}
	}
	return tw.Flush()
}
