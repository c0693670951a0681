package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) decksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List the decks found in every source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decks, _ := a.scan(false)
			if len(decks) == 0 {
				fmt.Fprintln(a.out, "No decks found.")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DECK\tSOURCE\tPATH")
			for _, d := range decks {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Source, d.Path)
			}
			return w.Flush()
		},
	}
}
