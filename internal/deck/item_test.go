package deck

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/srs"
)

var dog = domain.Vocab{Prompt: "犬", Reading: "いぬ", Answer: "dog"}

func TestNewItemDefaults(t *testing.T) {
	it := NewItem(dog, nil)
	assert.Equal(t, srs.NewCard(), it.Card)
	assert.Zero(t, it.Level)
	assert.True(t, it.LastReviewed.IsZero())
	assert.True(t, it.IsDefault())
	assert.True(t, it.Due(epoch))
	assert.Equal(t, NewItem(dog, nil).SortKey(), it.SortKey())
}

func TestNewItemAdoptsRecord(t *testing.T) {
	interval := 86400.0
	last := 1234567890.0
	level := 2
	rec := &Record{
		Japanese:         "勉強",
		Reading:          "べんきょう",
		English:          "to study",
		Card:             srs.Record{Status: srs.Reviewing, Step: 1, Interval: &interval, Ease: 2.5, Level: 2},
		LastReviewedTime: &last,
		Level:            &level,
	}
	it := NewItem(rec.Vocab(), rec)

	assert.Equal(t, srs.MakeCard(srs.Reviewing, 24*time.Hour, 2.5, 1, 2), it.Card)
	assert.Equal(t, 2, it.Level)
	assert.Equal(t, time.Unix(1234567890, 0), it.LastReviewed)
	assert.False(t, it.IsDefault())

	reviewed := time.Unix(1234567890, 0)
	assert.False(t, it.Due(reviewed.Add(23*time.Hour)))
	assert.True(t, it.Due(reviewed.Add(24*time.Hour)))
}

func TestNewItemLevelFallsBackToClampedCardLevel(t *testing.T) {
	testCases := []struct {
		cardLevel int
		want      int
	}{
		{cardLevel: -2, want: 0},
		{cardLevel: 1, want: 1},
		{cardLevel: 6, want: 3},
	}
	for _, tc := range testCases {
		rec := &Record{Japanese: "Q", Card: srs.Record{Status: srs.Reviewing, Ease: 2.5, Level: tc.cardLevel}}
		it := NewItem(rec.Vocab(), rec)
		assert.Equal(t, tc.want, it.Level, "card level %d", tc.cardLevel)
		assert.Equal(t, tc.cardLevel, it.Card.Level(), "card level is kept apart from display level")
	}
}

func TestNewItemMalformedRecordFallsBack(t *testing.T) {
	last := 99.0
	rec := &Record{Japanese: "犬", Card: srs.Record{Status: 0, Ease: 2.5}, LastReviewedTime: &last}
	it := NewItem(dog, rec)
	assert.True(t, it.IsDefault())
	assert.True(t, it.LastReviewed.IsZero())
}

func TestIsDefault(t *testing.T) {
	it := NewItem(dog, nil)
	it.LastReviewed = epoch
	assert.True(t, it.IsDefault(), "review time alone does not make progress")

	it.Level = 1
	assert.False(t, it.IsDefault())

	it.Level = 0
	it.Card = srs.MakeCard(srs.Learning, time.Minute, srs.DefaultEase, 0, 0)
	assert.False(t, it.IsDefault())
}

func TestItemRecordAfterEasy(t *testing.T) {
	it := NewItem(dog, nil)
	next, err := it.Card.Next(srs.Success, srs.Easy)
	require.NoError(t, err)
	it.Card = next
	it.Level = 1
	it.LastReviewed = epoch

	assert.Equal(t, srs.Reviewing, it.Card.Status())
	assert.Equal(t, 4*24*time.Hour, it.Card.Interval())
	assert.Equal(t, 1, it.Card.Level())

	rec := it.Record()
	require.NotNil(t, rec.Card.Interval)
	assert.Equal(t, 345600.0, *rec.Card.Interval)
	require.NotNil(t, rec.LastReviewedTime)
	assert.Equal(t, 1_700_000_000.0, *rec.LastReviewedTime)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"japanese": "犬",
		"reading": "いぬ",
		"english": "dog",
		"card": {"status": "reviewing", "step": 0, "interval": 345600, "ease": 2.5, "level": 1},
		"last_reviewed_time": 1700000000,
		"level": 1
	}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	restored := NewItem(back.Vocab(), &back)
	assert.Equal(t, it.Card, restored.Card)
	assert.Equal(t, it.Level, restored.Level)
	assert.True(t, it.LastReviewed.Equal(restored.LastReviewed))
}

func TestRecordUnmarshal(t *testing.T) {
	t.Run("record without level", func(t *testing.T) {
		data := `{"japanese": "勉強", "reading": "べんきょう", "english": "to study",
			"card": {"status": "reviewing", "step": 1, "interval": 86400.0, "ease": 2.5, "level": 2},
			"last_reviewed_time": 1234567890}`
		var r Record
		require.NoError(t, json.Unmarshal([]byte(data), &r))
		assert.Equal(t, "勉強", r.Japanese)
		assert.Equal(t, "to study", r.English)
		assert.Nil(t, r.Level)
		assert.Equal(t, srs.Reviewing, r.Card.Status)
	})

	t.Run("legacy question and answer keys", func(t *testing.T) {
		data := `{"question": "犬", "answer": "dog",
			"card": {"status": "learning", "step": 0, "interval": null, "ease": 2.5, "level": 0},
			"last_reviewed_time": null}`
		var r Record
		require.NoError(t, json.Unmarshal([]byte(data), &r))
		assert.Equal(t, "犬", r.Japanese)
		assert.Equal(t, "dog", r.English)
		assert.Nil(t, r.LastReviewedTime)
	})

	t.Run("null reading", func(t *testing.T) {
		data := `{"japanese": "犬", "reading": null, "english": "dog",
			"card": {"status": "learning", "step": 0, "interval": null, "ease": 2.5, "level": 0}}`
		var r Record
		require.NoError(t, json.Unmarshal([]byte(data), &r))
		assert.Empty(t, r.Reading)
	})

	t.Run("bad status", func(t *testing.T) {
		data := `{"japanese": "犬", "card": {"status": "??", "ease": 2.5}}`
		var r Record
		assert.ErrorIs(t, json.Unmarshal([]byte(data), &r), srs.ErrInvalidStatus)
	})
}

func TestIndex(t *testing.T) {
	idx := Index([]Record{{Japanese: "a", English: "1"}, {Japanese: "b"}, {Japanese: "a", English: "2"}})
	assert.Len(t, idx, 2)
	assert.Equal(t, "2", idx["a"].English)
}

func TestSummarize(t *testing.T) {
	fresh := NewItem(domain.Vocab{Prompt: "fresh"}, nil)

	waiting := NewItem(domain.Vocab{Prompt: "waiting"}, nil)
	waiting.Card = srs.MakeCard(srs.Reviewing, 24*time.Hour, 2.5, 0, 1)
	waiting.Level = 2
	waiting.LastReviewed = epoch

	soon := NewItem(domain.Vocab{Prompt: "soon"}, nil)
	soon.Card = srs.MakeCard(srs.Learning, time.Minute, 2.5, 0, 0)
	soon.Level = 1
	soon.LastReviewed = epoch

	s := Summarize([]*Item{fresh, waiting, soon}, epoch.Add(30*time.Second))
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Due)
	assert.Equal(t, 2, s.Studied)
	assert.Equal(t, [4]int{1, 1, 1, 0}, s.Levels)
	assert.Equal(t, epoch.Add(time.Minute), s.NextDue)
}
