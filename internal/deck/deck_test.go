package deck

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/benkyou/internal/domain"
	"github.com/conorfennell/benkyou/internal/srs"
)

var epoch = time.Unix(1_700_000_000, 0)

func itemAt(prompt string, level int) *Item {
	it := NewItem(domain.Vocab{Prompt: prompt, Answer: "A" + prompt}, nil)
	it.Card = srs.MakeCard(srs.Reviewing, 0, srs.DefaultEase, 0, level)
	return it
}

func drain(t *testing.T, d *Deck, now time.Time) []string {
	t.Helper()
	var got []string
	for {
		it, ok := d.Next(now)
		if !ok {
			return got
		}
		got = append(got, it.Prompt)
	}
}

func TestNewDeckIsEmpty(t *testing.T) {
	d := New()
	assert.Zero(t, d.Len())
	assert.Empty(t, d.Items())
	_, ok := d.Next(epoch)
	assert.False(t, ok)
}

func TestAddRoutesByCardLevel(t *testing.T) {
	testCases := []struct {
		level  int
		review bool
	}{
		{level: 0},
		{level: 1},
		{level: 3},
		{level: 4, review: true},
		{level: -1, review: true},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.level), func(t *testing.T) {
			d := New()
			it := itemAt("Q", tc.level)
			d.Add(it)
			if tc.review {
				assert.Equal(t, 1, d.review.Size())
			} else {
				assert.Equal(t, 1, d.levels[tc.level].Size())
			}
			assert.Equal(t, 1, d.Ready())
			assert.Zero(t, d.Waiting())
		})
	}
}

func TestNextBucketPriority(t *testing.T) {
	d := New()
	d.Add(itemAt("Q1", 1))
	d.Add(itemAt("Q3", 3))
	d.Add(itemAt("Qr", 7))
	d.Add(itemAt("Q0", 0))
	d.Add(itemAt("Q2", 2))

	assert.Equal(t, []string{"Q3", "Q2", "Q1", "Q0", "Qr"}, drain(t, d, epoch))
	_, ok := d.Next(epoch)
	assert.False(t, ok)
}

func TestNextIsLastInFirstOutWithinBucket(t *testing.T) {
	d := New()
	d.Add(itemAt("A", 1))
	d.Add(itemAt("B", 1))
	d.Add(itemAt("C", 1))

	assert.Equal(t, []string{"C", "B", "A"}, drain(t, d, epoch))
}

func TestRequeueWaitsForCooldown(t *testing.T) {
	d := New()
	it := itemAt("Q", 0)
	it.Card = srs.MakeCard(srs.Learning, 10*time.Minute, srs.DefaultEase, 1, 0)
	it.LastReviewed = epoch
	d.Requeue(it)

	_, ok := d.Next(epoch.Add(10*time.Minute - time.Second))
	assert.False(t, ok, "item must not be served before its interval elapses")
	assert.Equal(t, 1, d.Waiting())

	got, ok := d.Next(epoch.Add(10 * time.Minute))
	require.True(t, ok)
	assert.Same(t, it, got)
	assert.Zero(t, d.Len())
}

func TestRequeueImmediatelyEligible(t *testing.T) {
	t.Run("never reviewed", func(t *testing.T) {
		d := New()
		it := itemAt("Q", 0)
		it.Card = srs.MakeCard(srs.Reviewing, 30*24*time.Hour, srs.DefaultEase, 0, 0)
		d.Requeue(it)

		got, ok := d.Next(epoch)
		require.True(t, ok)
		assert.Same(t, it, got)
	})

	t.Run("no interval", func(t *testing.T) {
		d := New()
		it := itemAt("Q", 0)
		it.LastReviewed = epoch.Add(time.Hour)
		d.Requeue(it)

		got, ok := d.Next(epoch)
		require.True(t, ok)
		assert.Same(t, it, got)
	})
}

func TestPromoteDueKeepsWaitingOrder(t *testing.T) {
	d := New()
	var due []*Item
	for i := range 3 {
		it := itemAt(fmt.Sprintf("due%d", i), 2)
		due = append(due, it)
		d.Requeue(it)
	}
	later := itemAt("later", 2)
	later.Card = srs.MakeCard(srs.Reviewing, time.Hour, srs.DefaultEase, 0, 2)
	later.LastReviewed = epoch
	d.Requeue(later)

	assert.Equal(t, 3, d.PromoteDue(epoch))
	assert.Equal(t, 1, d.Waiting())

	// promoted in waiting order, each to the front, so the bucket is reversed
	assert.Equal(t, []*Item{due[2], due[1], due[0], later}, d.Items())
}

func TestShuffleIsDeterministic(t *testing.T) {
	prompts := []string{"犬", "猫", "鳥", "魚", "馬", "牛", "羊", "猿"}

	build := func(order []string) []string {
		d := New()
		for _, p := range order {
			d.Requeue(NewItem(domain.Vocab{Prompt: p}, nil))
		}
		d.PromoteDue(epoch)
		d.Shuffle()
		return drain(t, d, epoch)
	}

	reversed := make([]string, len(prompts))
	for i, p := range prompts {
		reversed[len(prompts)-1-i] = p
	}

	first := build(prompts)
	assert.Equal(t, first, build(prompts))
	assert.Equal(t, first, build(reversed))
	assert.ElementsMatch(t, prompts, first)

	for i := 1; i < len(first); i++ {
		prev := NewItem(domain.Vocab{Prompt: first[i-1]}, nil).SortKey()
		cur := NewItem(domain.Vocab{Prompt: first[i]}, nil).SortKey()
		assert.LessOrEqual(t, prev, cur)
	}
}

func TestShuffleBreaksTiesOnDuplicatePrompts(t *testing.T) {
	rows := []domain.Vocab{
		{Prompt: "生", Reading: "せい", Answer: "life"},
		{Prompt: "生", Reading: "なま", Answer: "raw"},
		{Prompt: "生", Reading: "なま", Answer: "draft"},
		{Prompt: "犬", Reading: "いぬ", Answer: "dog"},
	}

	build := func(order []int) []string {
		d := New()
		for _, i := range order {
			d.Requeue(NewItem(rows[i], nil))
		}
		d.PromoteDue(epoch)
		d.Shuffle()
		var answers []string
		for _, it := range d.Items() {
			answers = append(answers, it.Answer)
		}
		return answers
	}

	first := build([]int{0, 1, 2, 3})
	assert.Equal(t, first, build([]int{3, 2, 1, 0}))
	assert.Equal(t, first, build([]int{2, 0, 3, 1}))
}

func TestItemsSnapshotOrder(t *testing.T) {
	d := New()
	l1 := itemAt("l1", 1)
	l3 := itemAt("l3", 3)
	rv := itemAt("rv", -2)
	w := itemAt("w", 0)
	w.Card = srs.MakeCard(srs.Learning, time.Hour, srs.DefaultEase, 0, 0)
	w.LastReviewed = epoch

	d.Add(l1)
	d.Add(rv)
	d.Add(l3)
	d.Requeue(w)

	assert.Equal(t, []*Item{l3, l1, rv, w}, d.Items())
	assert.Equal(t, 4, d.Len())
	assert.Equal(t, 3, d.Ready())
	assert.Equal(t, 1, d.Waiting())
}

func TestEveryItemHeldExactlyOnce(t *testing.T) {
	d := New()
	var all []*Item
	for i := range 12 {
		it := itemAt(fmt.Sprintf("q%d", i), i%6-1)
		all = append(all, it)
		d.Requeue(it)
	}

	now := epoch
	for round := range 30 {
		it, ok := d.Next(now)
		if ok {
			opts := it.Card.Options(srs.Unknown)
			it.Card = opts[round%4].Card
			it.LastReviewed = now
			d.Requeue(it)
		}
		now = now.Add(7 * time.Minute)

		items := d.Items()
		require.Len(t, items, len(all))
		seen := map[*Item]int{}
		for _, x := range items {
			seen[x]++
		}
		for _, x := range all {
			require.Equal(t, 1, seen[x], "round %d: %s", round, x.Prompt)
		}
	}
}
