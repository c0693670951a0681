package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/conorfennell/benkyou/internal/storage"
)

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <deck>",
		Short: "Show study progress for a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, store, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			s := sess.Summary()
			nextDue := "-"
			if !s.NextDue.IsZero() {
				nextDue = humanize.Time(s.NextDue)
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Deck:\t%s\n", sess.Name())
			fmt.Fprintf(w, "Total cards:\t%d\n", s.Total)
			fmt.Fprintf(w, "Studied:\t%d\n", s.Studied)
			fmt.Fprintf(w, "Due now:\t%d\n", s.Due)
			fmt.Fprintf(w, "By level:\t%d / %d / %d / %d\n", s.Levels[0], s.Levels[1], s.Levels[2], s.Levels[3])
			fmt.Fprintf(w, "Next due:\t%s\n", nextDue)

			if db, ok := store.(*storage.DB); ok {
				logs, err := db.ReviewsByDeck(sess.Name())
				if err != nil {
					return err
				}
				correct := 0
				for _, l := range logs {
					if l.Correct {
						correct++
					}
				}
				fmt.Fprintf(w, "Reviews:\t%s (%d correct)\n", humanize.Comma(int64(len(logs))), correct)
			}
			return w.Flush()
		},
	}
}
