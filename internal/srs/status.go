package srs

import (
	"encoding"
	"fmt"
)

// Status is the study stage of a card.
type Status int

const (
	Learning   Status = iota + 1 // New card, working through the learning steps.
	Reviewing                    // Graduated into the spaced review cycle.
	Relearning                   // Lapsed during review.
)

var (
	statusNames  = [...]string{Learning: "learning", Reviewing: "reviewing", Relearning: "relearning"}
	statusByName = map[string]Status{
		"learning":   Learning,
		"reviewing":  Reviewing,
		"relearning": Relearning,
	}
)

var (
	_ fmt.Stringer             = Status(0)
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	return s >= Learning && s <= Relearning
}

func (s Status) String() string {
	if s.IsValid() {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler. It is also what
// encoding/json uses, so a Status is persisted as a plain string.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, ok := statusByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
	}
	*s = v
	return nil
}

// ParseStatus converts a persisted status name back into a Status.
func ParseStatus(name string) (Status, error) {
	var s Status
	err := s.UnmarshalText([]byte(name))
	return s, err
}
