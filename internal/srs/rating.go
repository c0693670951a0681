package srs

import (
	"encoding"
	"fmt"
)

// Rating is the answer outcome a card transition is selected by.
type Rating int

const (
	Again Rating = 1
	Hard  Rating = 2
	Good  Rating = 3
	Easy  Rating = 4
)

var (
	ratingNames  = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}
	ratingByName = map[string]Rating{
		"again": Again,
		"hard":  Hard,
		"good":  Good,
		"easy":  Easy,
	}
)

var (
	_ fmt.Stringer             = Rating(0)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is Again through Easy.
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, ok := ratingByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRating, text)
	}
	*r = v
	return nil
}

// RatingForLevel maps a display level onto the transition table.
// Levels outside [0,3] are clamped first, so the result is always valid.
func RatingForLevel(level int) Rating {
	return Rating(ClampLevel(level)) + Again
}

// ClampLevel bounds a display level to [0, MaxDisplayLevel].
func ClampLevel(level int) int {
	return max(0, min(level, MaxDisplayLevel))
}

// Verdict is the outcome of the previous grading round.
type Verdict int

const (
	Failure Verdict = -1
	Unknown Verdict = 0
	Success Verdict = 1
)

func (v Verdict) String() string {
	switch v {
	case Failure:
		return "failure"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}
