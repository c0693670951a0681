package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/benkyou/internal/deck"
	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/knol"
	"github.com/conorfennell/benkyou/internal/srs"
)

// ErrNoCurrentItem is returned by Grade when no item is being presented.
var ErrNoCurrentItem = errors.New("session: no item is being presented")

// ProgressStore loads and saves a deck's progress records.
type ProgressStore interface {
	LoadProgress(deckName string) ([]deck.Record, error)
	SaveProgress(deckName string, records []deck.Record) error
}

// ReviewLogger receives one entry per graded answer.
type ReviewLogger interface {
	LogReview(log domain.ReviewLog) error
}

// Session drives one study session over a deck: load, then repeatedly
// Next and Grade, then Save.
type Session struct {
	id      string
	name    string
	store   ProgressStore
	reviews ReviewLogger
	clock   func() time.Time
	logger  *slog.Logger

	deck    *deck.Deck
	current *deck.Item
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now as the session's source of "now".
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithLogger replaces slog.Default as the session's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithReviewLogger records every graded answer.
func WithReviewLogger(r ReviewLogger) Option {
	return func(s *Session) { s.reviews = r }
}

// New creates a session for the deck called name. Progress is loaded from
// and saved to store under that name.
func New(name string, store ProgressStore, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		name:   name,
		store:  store,
		clock:  time.Now,
		logger: slog.Default(),
		deck:   deck.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("deck", name, "session", s.id)
	return s
}

func (s *Session) ID() string   { return s.id }
func (s *Session) Name() string { return s.name }

// Start builds one item per vocabulary row, merged with any saved
// progress, parks every item in the waiting area and shuffles the deck.
// Unreadable progress is logged and treated as no progress.
func (s *Session) Start(vocab []domain.Vocab) error {
	if s.deck.Len() > 0 || s.current != nil {
		return fmt.Errorf("session %s already started", s.name)
	}

	records, err := s.store.LoadProgress(s.name)
	if err != nil {
		s.logger.Warn("Failed to load progress, starting fresh", "error", err)
		records = nil
	}
	saved := deck.Index(records)

	restored := 0
	for _, v := range vocab {
		var rec *deck.Record
		if r, ok := saved[v.Prompt]; ok {
			rec = &r
			restored++
		}
		s.deck.Requeue(deck.NewItem(v, rec))
	}
	s.deck.Shuffle()

	s.logger.Info("Study session started", "cards", len(vocab), "restored", restored)
	return nil
}

// Next presents the next ready item. It returns false when nothing is
// ready; Finished tells whether anything is left at all. An item that is
// still being presented is returned again until it is graded.
func (s *Session) Next() (*deck.Item, bool) {
	if s.current != nil {
		return s.current, true
	}
	it, ok := s.deck.Next(s.clock())
	if !ok {
		return nil, false
	}
	s.current = it
	return it, true
}

// Current returns the item being presented, if any.
func (s *Session) Current() (*deck.Item, bool) {
	return s.current, s.current != nil
}

// Grade records the learner's answer for the current item, moves its
// card to the next state and parks it until it is due again.
func (s *Session) Grade(correct bool) (srs.Option, error) {
	it := s.current
	if it == nil {
		return srs.Option{}, ErrNoCurrentItem
	}

	now := s.clock()
	it.LastReviewed = now
	verdict := srs.Failure
	if correct {
		verdict = srs.Success
	}
	it.Level = srs.ClampLevel(it.Level + int(verdict))

	opt := it.Card.Options(verdict)[srs.RatingForLevel(it.Level)-srs.Again]
	it.Card = opt.Card

	s.deck.Requeue(it)
	s.current = nil

	s.logger.Debug("Card graded",
		"prompt", it.Prompt,
		"correct", correct,
		"rating", opt.Rating,
		"status", opt.Card.Status(),
		"interval", opt.Card.Interval(),
	)

	if s.reviews != nil {
		err := s.reviews.LogReview(domain.ReviewLog{
			ID:        uuid.NewString(),
			SessionID: s.id,
			Deck:      s.name,
			CardHash:  knol.Hash(it.Vocab),
			Prompt:    it.Prompt,
			Rating:    opt.Rating.String(),
			Correct:   correct,
			Timestamp: now,
		})
		if err != nil {
			s.logger.Warn("Failed to log review", "prompt", it.Prompt, "error", err)
		}
	}
	return opt, nil
}

// Items returns every item of the session, including one being presented.
func (s *Session) Items() []*deck.Item {
	items := s.deck.Items()
	if s.current != nil {
		items = append([]*deck.Item{s.current}, items...)
	}
	return items
}

// Pending is the number of items waiting for their cool-down.
func (s *Session) Pending() int {
	return s.deck.Waiting()
}

// Finished reports whether no item is left anywhere in the deck.
func (s *Session) Finished() bool {
	return s.current == nil && s.deck.Len() == 0
}

// Summary reports progress over every item of the session.
func (s *Session) Summary() deck.Summary {
	return deck.Summarize(s.Items(), s.clock())
}

// Save persists every item that carries progress.
func (s *Session) Save() error {
	var records []deck.Record
	for _, it := range s.Items() {
		if it.IsDefault() {
			continue
		}
		records = append(records, it.Record())
	}
	if err := s.store.SaveProgress(s.name, records); err != nil {
		return fmt.Errorf("failed to save progress for %s: %w", s.name, err)
	}
	s.logger.Info("Progress saved", "records", len(records))
	return nil
}
