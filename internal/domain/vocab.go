package domain

import "time"

// Vocab represents a single studyable vocabulary row.
type Vocab struct {
	Prompt  string // the Japanese term, also the key progress is joined on
	Reading string // phonetic reading, may be empty
	Answer  string // the English meaning
}

// ReviewLog records a single grading of a card during a study session.
// Rating is the transition that was applied: again, hard, good or easy.
type ReviewLog struct {
	ID        string
	SessionID string
	Deck      string
	CardHash  string
	Prompt    string
	Rating    string
	Correct   bool
	Timestamp time.Time
}
