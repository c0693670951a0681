package deck

import (
	"time"

	"github.com/conorfennell/benkyou/internal/srs"
)

// Summary is a snapshot of study progress across a set of items.
type Summary struct {
	Total   int
	Due     int
	Studied int // items carrying progress
	Levels  [srs.MaxDisplayLevel + 1]int
	NextDue time.Time // earliest future due time, zero if none
}

// Summarize counts items by display level and due state at now.
func Summarize(items []*Item, now time.Time) Summary {
	var s Summary
	for _, it := range items {
		s.Total++
		s.Levels[srs.ClampLevel(it.Level)]++
		if !it.IsDefault() {
			s.Studied++
		}
		if it.Due(now) {
			s.Due++
			continue
		}
		if due := it.DueAt(); s.NextDue.IsZero() || due.Before(s.NextDue) {
			s.NextDue = due
		}
	}
	return s
}
