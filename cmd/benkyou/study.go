package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"
)

func (a *app) studyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "study <deck>",
		Short: "Study a deck until nothing is due",
		Long: `Study presents the cards of a deck one at a time. Type the answer and
press Enter; an empty line counts as a miss. Type :q or send EOF to stop.
Progress is saved when the session ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, store, err := a.openSession(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			q := &quiz{
				sess: sess,
				mode: a.cfg.Mode,
				in:   bufio.NewScanner(a.in),
				out:  a.out,
				coin: func() bool { return rand.IntN(2) == 0 },
			}
			runErr := q.run()
			if err := sess.Save(); err != nil {
				return err
			}
			if runErr != nil {
				slog.Error("Study session interrupted", "deck", sess.Name(), "error", runErr)
				return runErr
			}

			s := sess.Summary()
			fmt.Fprintf(a.out, "Studied %d of %d cards.\n", s.Studied, s.Total)
			return nil
		},
	}
}
