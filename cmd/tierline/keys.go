package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/tierline/internal/input/keymap"
)

func newKeysCmd(g *globals) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the active key bindings",
		Long: `Keys prints the default bindings merged with the configured keymap file
and inline bindings. With --format toml, yaml or json the output is a
keymap file that can be edited and referenced from keymap.file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := g.cfg.BuildKeymap()
			if err != nil {
				return err
			}
			if encoding == "" || encoding == "text" {
				return printKeymap(cmd.OutOrStdout(), km)
			}

			data, err := km.Encode(keymap.Encoding(strings.ToLower(encoding)))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&encoding, "format", "f", "text", "output format: text, toml, yaml or json")
	return cmd
}

func printKeymap(w io.Writer, km *keymap.Keymap) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, cat := range keymap.GroupByCategory(km.Bindings()) {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", cat.Name)
		for _, b := range cat.Bindings {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Keys, b.Action, b.Description)
		}
	}
	return tw.Flush()
}
