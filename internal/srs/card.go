package srs

import (
	"fmt"
	"math"
	"time"
)

const (
	// MinEase is the floor every constructed card's ease is clamped to.
	MinEase     = 1.3
	DefaultEase = 2.5

	// MaxDisplayLevel is the highest display level and the last index
	// of the transition table.
	MaxDisplayLevel = 3

	day = 24 * time.Hour

	// MaxInterval caps every scheduled interval. Repeated easy answers
	// grow intervals geometrically and would otherwise overflow.
	MaxInterval = 36500 * day
)

// Card is the scheduling state of a single flashcard. It is a value:
// transitions return new cards and never modify the receiver.
type Card struct {
	status   Status
	interval time.Duration // zero when the card has never been scheduled
	ease     float64
	step     int
	level    int
}

// Option pairs an answer outcome with the card that outcome leads to.
type Option struct {
	Rating Rating
	Card   Card
}

// NewCard returns a card that has never been studied.
func NewCard() Card {
	return MakeCard(Learning, 0, DefaultEase, 0, 0)
}

// MakeCard builds a card in an arbitrary state, for example when restoring
// persisted progress. Ease below MinEase is raised to MinEase and an
// interval above MaxInterval is lowered to MaxInterval.
func MakeCard(status Status, interval time.Duration, ease float64, step, level int) Card {
	if math.IsNaN(ease) || ease < MinEase {
		ease = MinEase
	}
	interval = min(interval, MaxInterval)
	return Card{
		status:   status,
		interval: interval,
		ease:     ease,
		step:     step,
		level:    level,
	}
}

func (c Card) Status() Status          { return c.status }
func (c Card) Interval() time.Duration { return c.interval }
func (c Card) Ease() float64           { return c.ease }
func (c Card) Step() int               { return c.step }
func (c Card) Level() int              { return c.level }

func (c Card) String() string {
	return fmt.Sprintf("Card(status=%s, step=%d, interval=%s, ease=%g, level=%d)",
		c.status, c.step, c.interval, c.ease, c.level)
}

// Options returns the four possible successors of c, in the order
// again, hard, good, easy. The previous verdict does not influence the
// current tables.
func (c Card) Options(prev Verdict) [4]Option {
	var next [4]Card
	switch c.status {
	case Reviewing:
		next = c.reviewingOptions()
	case Relearning:
		next = c.relearningOptions()
	default:
		next = c.learningOptions()
	}

	var opts [4]Option
	for i, card := range next {
		opts[i] = Option{Rating: Again + Rating(i), Card: card}
	}
	return opts
}

// Next returns the successor of c for the given rating.
func (c Card) Next(prev Verdict, r Rating) (Card, error) {
	if !r.IsValid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return c.Options(prev)[r-Again].Card, nil
}

func (c Card) learningOptions() [4]Card {
	good := MakeCard(Learning, 5*time.Minute, DefaultEase, 1, c.level+1)
	if c.step != 0 {
		good = MakeCard(Reviewing, day, DefaultEase, 0, c.level+1)
	}
	return [4]Card{
		MakeCard(Learning, time.Minute, DefaultEase, 0, 0),
		MakeCard(Learning, 3*time.Minute, DefaultEase, 1, c.level+1),
		good,
		MakeCard(Reviewing, 4*day, DefaultEase, 0, c.level+1),
	}
}

func (c Card) reviewingOptions() [4]Card {
	return [4]Card{
		MakeCard(Relearning, 10*time.Minute, c.ease-0.2, 0, c.level-1),
		MakeCard(Reviewing, scaleInterval(c.interval, 1.2), c.ease-0.15, 0, c.level-1),
		MakeCard(Reviewing, scaleInterval(c.interval, c.ease), c.ease, 0, c.level-1),
		MakeCard(Reviewing, scaleInterval(c.interval, c.ease*1.5), c.ease+0.15, 0, c.level+1),
	}
}

func (c Card) relearningOptions() [4]Card {
	return [4]Card{
		MakeCard(Relearning, time.Minute, c.ease, 0, c.level-1),
		MakeCard(Relearning, 6*time.Minute, c.ease, 0, c.level-1),
		MakeCard(Reviewing, day, c.ease, 0, c.level-1),
		MakeCard(Reviewing, 4*day, c.ease, 0, c.level+1),
	}
}

// scaleInterval multiplies d by f and rounds to whole seconds, the unit
// intervals are persisted in. The result never exceeds MaxInterval.
func scaleInterval(d time.Duration, f float64) time.Duration {
	secs := math.Round(d.Seconds() * f)
	if secs >= MaxInterval.Seconds() {
		return MaxInterval
	}
	return time.Duration(secs) * time.Second
}
