package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/conorfennell/benkyou/internal/config"
	"github.com/conorfennell/benkyou/internal/library"
	"github.com/conorfennell/benkyou/internal/parser"
	"github.com/conorfennell/benkyou/internal/session"
	"github.com/conorfennell/benkyou/internal/storage"
)

type app struct {
	cfg *config.Config
	in  io.Reader
	out io.Writer
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "benkyou",
		Short: "Spaced repetition for Japanese vocabulary decks",
		Long: `Benkyou quizzes you on vocabulary decks kept in local directories
or git repositories and schedules each word with a spaced repetition
state machine. Progress is kept in sqlite or in one JSON file per deck.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			slog.SetDefault(cfg.Logger())
			return nil
		},
	}
	config.RegisterFlags(root.PersistentFlags())
	root.SetIn(in)
	root.SetOut(out)

	root.AddCommand(
		a.decksCmd(),
		a.syncCmd(),
		a.studyCmd(),
		a.statsCmd(),
	)
	return root
}

// scan lists the decks of every configured source. Sources that fail are
// logged and skipped.
func (a *app) scan(syncGit bool) ([]library.DeckFile, error) {
	decks, errs := library.New(a.cfg.ReposDir).Scan(a.cfg.Sources, syncGit)
	for _, err := range errs {
		slog.Warn("Deck source skipped", "error", err)
	}
	return decks, errors.Join(errs...)
}

// openSession opens the configured store and starts a session over the
// deck called name. The caller closes the returned store.
func (a *app) openSession(name string) (*session.Session, storage.Store, error) {
	decks, _ := a.scan(false)
	df, err := library.Find(decks, name)
	if err != nil {
		return nil, nil, err
	}

	vocab, err := parser.ParseFile(df.Path)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.OpenStore(a.cfg.Driver, a.cfg.DB, a.cfg.ProgressDir)
	if err != nil {
		return nil, nil, err
	}

	var opts []session.Option
	if reviews, ok := store.(session.ReviewLogger); ok {
		opts = append(opts, session.WithReviewLogger(reviews))
	}
	sess := session.New(df.Name, store, opts...)
	if err := sess.Start(vocab); err != nil {
		store.Close()
		return nil, nil, err
	}
	return sess, store, nil
}
