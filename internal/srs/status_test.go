package srs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusText(t *testing.T) {
	for _, s := range []Status{Learning, Reviewing, Relearning} {
		t.Run(s.String(), func(t *testing.T) {
			text, err := s.MarshalText()
			require.NoError(t, err)

			got, err := ParseStatus(string(text))
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}

	_, err := Status(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, "Status(7)", Status(7).String())

	_, err = ParseStatus("Learning")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRatingText(t *testing.T) {
	data, err := json.Marshal([]Rating{Again, Hard, Good, Easy})
	require.NoError(t, err)
	assert.JSONEq(t, `["again","hard","good","easy"]`, string(data))

	var back []Rating
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Rating{Again, Hard, Good, Easy}, back)

	var r Rating
	assert.ErrorIs(t, r.UnmarshalText([]byte("perfect")), ErrInvalidRating)
	_, err = Rating(5).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "failure", Failure.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "success", Success.String())
}
