package deck

import (
	"math"
	"time"

	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/knol"
	"github.com/conorfennell/benkyou/internal/srs"
)

// Item binds a vocabulary row to its scheduling state for one session.
type Item struct {
	domain.Vocab

	Card         srs.Card
	Level        int       // display level, 0 to srs.MaxDisplayLevel
	LastReviewed time.Time // zero if never reviewed

	sortKey float64
}

// NewItem creates an item for v. If rec is non-nil and holds a valid card,
// the persisted state is adopted; otherwise the item starts fresh.
func NewItem(v domain.Vocab, rec *Record) *Item {
	it := &Item{
		Vocab:   v,
		Card:    srs.NewCard(),
		sortKey: knol.SortKey(v.Prompt),
	}
	if rec == nil {
		return it
	}

	card, err := srs.FromRecord(rec.Card)
	if err != nil {
		return it
	}
	it.Card = card
	if rec.Level != nil {
		it.Level = srs.ClampLevel(*rec.Level)
	} else {
		it.Level = srs.ClampLevel(card.Level())
	}
	if rec.LastReviewedTime != nil && *rec.LastReviewedTime > 0 {
		it.LastReviewed = fromEpoch(*rec.LastReviewedTime)
	}
	return it
}

// SortKey is the deterministic shuffle key derived from the prompt.
func (it *Item) SortKey() float64 {
	return it.sortKey
}

// DueAt is when the item's cool-down elapses. It is the zero time for
// items that are due regardless of the clock.
func (it *Item) DueAt() time.Time {
	if it.Card.Interval() == 0 || it.LastReviewed.IsZero() {
		return time.Time{}
	}
	return it.LastReviewed.Add(it.Card.Interval())
}

// Due reports whether the item may leave the waiting area at now.
func (it *Item) Due(now time.Time) bool {
	due := it.DueAt()
	return due.IsZero() || !due.After(now)
}

// IsDefault reports whether the item carries no progress worth keeping.
func (it *Item) IsDefault() bool {
	return it.Card == srs.NewCard() && it.Level == 0
}

// Record converts the item into its persisted form.
func (it *Item) Record() Record {
	level := it.Level
	r := Record{
		Japanese: it.Prompt,
		Reading:  it.Reading,
		English:  it.Answer,
		Card:     it.Card.Record(),
		Level:    &level,
	}
	if !it.LastReviewed.IsZero() {
		secs := toEpoch(it.LastReviewed)
		r.LastReviewedTime = &secs
	}
	return r
}

func toEpoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromEpoch(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*float64(time.Second))))
}
