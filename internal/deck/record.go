package deck

import (
	"encoding/json"

	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/srs"
)

// Record is one element of a deck's persisted progress list. Japanese is
// the join key against the vocabulary rows of the deck.
type Record struct {
	Japanese         string     `json:"japanese"`
	Reading          string     `json:"reading"`
	English          string     `json:"english"`
	Card             srs.Record `json:"card"`
	LastReviewedTime *float64   `json:"last_reviewed_time"`
	Level            *int       `json:"level,omitempty"`
}

// UnmarshalJSON also accepts the older "question"/"answer" keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	if r.Japanese == "" {
		r.Japanese = aux.Question
	}
	if r.English == "" {
		r.English = aux.Answer
	}
	return nil
}

// Vocab returns the vocabulary row the record was saved for.
func (r Record) Vocab() domain.Vocab {
	return domain.Vocab{Prompt: r.Japanese, Reading: r.Reading, Answer: r.English}
}

// Index keys records by prompt. Later duplicates win.
func Index(records []Record) map[string]Record {
	idx := make(map[string]Record, len(records))
	for _, r := range records {
		idx[r.Japanese] = r
	}
	return idx
}
