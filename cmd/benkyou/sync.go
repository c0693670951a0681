package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Clone or pull every git deck source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decks, err := a.scan(true)
			fmt.Fprintf(a.out, "%d decks available.\n", len(decks))
			return err
		},
	}
}
