package srs

import (
	"fmt"
	"math"
	"time"
)

// Record is the flat persisted form of a Card. Interval is in seconds and
// is null for a card that has never been scheduled.
type Record struct {
	Status   Status   `json:"status"`
	Step     int      `json:"step"`
	Interval *float64 `json:"interval"`
	Ease     float64  `json:"ease"`
	Level    int      `json:"level"`
}

// Record converts c into its persisted form.
func (c Card) Record() Record {
	r := Record{
		Status: c.status,
		Step:   c.step,
		Ease:   c.ease,
		Level:  c.level,
	}
	if c.interval != 0 {
		secs := c.interval.Seconds()
		r.Interval = &secs
	}
	return r
}

// maxRecordSeconds is the largest interval, in seconds, a time.Duration
// can hold.
const maxRecordSeconds = float64(math.MaxInt64) / float64(time.Second)

// FromRecord rebuilds a Card from its persisted form. Intervals that do not
// fit a time.Duration are rejected; longer than MaxInterval ones are capped.
func FromRecord(r Record) (Card, error) {
	if !r.Status.IsValid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidStatus, int(r.Status))
	}
	var interval time.Duration
	if r.Interval != nil {
		if math.IsNaN(*r.Interval) || math.IsInf(*r.Interval, 0) || *r.Interval < 0 || *r.Interval >= maxRecordSeconds {
			return Card{}, fmt.Errorf("srs: invalid interval %v", *r.Interval)
		}
		interval = MaxInterval
		if *r.Interval < MaxInterval.Seconds() {
			interval = time.Duration(math.Round(*r.Interval * float64(time.Second)))
		}
	}
	return MakeCard(r.Status, interval, r.Ease, r.Step, r.Level), nil
}
