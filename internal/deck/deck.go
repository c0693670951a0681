package deck

import (
	"time"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/utils"
)

// numLevels is the number of level buckets. Items whose card level falls
// outside [0, numLevels) go to the review bucket.
const numLevels = 4

// Deck decides which item to present next. Every item it holds lives in
// exactly one of: a level bucket, the review bucket or the waiting area.
//
// Buckets are served front first and filled at the front, so the most
// recently added item in a bucket is served first. The waiting area is
// first in, first out.
//
// A Deck is not safe for concurrent use.
type Deck struct {
	levels  [numLevels]*doublylinkedlist.List
	review  *doublylinkedlist.List
	waiting *doublylinkedlist.List
}

// New returns an empty deck.
func New() *Deck {
	d := &Deck{
		review:  doublylinkedlist.New(),
		waiting: doublylinkedlist.New(),
	}
	for i := range d.levels {
		d.levels[i] = doublylinkedlist.New()
	}
	return d
}

// Add places it at the front of the bucket matching its card level.
func (d *Deck) Add(it *Item) {
	d.bucketFor(it).Prepend(it)
}

// Requeue parks it at the back of the waiting area until it is due.
func (d *Deck) Requeue(it *Item) {
	d.waiting.Append(it)
}

// Next promotes every due item and then serves the front item of the
// highest non-empty level bucket, falling back to the review bucket.
// It returns false when nothing is ready at now.
func (d *Deck) Next(now time.Time) (*Item, bool) {
	d.PromoteDue(now)

	for level := numLevels - 1; level >= 0; level-- {
		if it, ok := popFront(d.levels[level]); ok {
			return it, true
		}
	}
	return popFront(d.review)
}

// PromoteDue moves every waiting item that is due at now into its bucket,
// in waiting order, and returns how many were moved.
func (d *Deck) PromoteDue(now time.Time) int {
	if d.waiting.Empty() {
		return 0
	}

	kept := doublylinkedlist.New()
	promoted := 0
	it := d.waiting.Iterator()
	for it.Next() {
		item := it.Value().(*Item)
		if item.Due(now) {
			d.Add(item)
			promoted++
			continue
		}
		kept.Append(item)
	}
	d.waiting = kept
	return promoted
}

// Shuffle orders every bucket by ascending sort key. The order depends
// only on the prompts held, not on the order they were loaded in.
func (d *Deck) Shuffle() {
	for _, l := range d.levels {
		l.Sort(bySortKey)
	}
	d.review.Sort(bySortKey)
}

// Items returns a snapshot of every item: level buckets from highest to
// lowest, then the review bucket, then the waiting area.
func (d *Deck) Items() []*Item {
	items := make([]*Item, 0, d.Len())
	for level := numLevels - 1; level >= 0; level-- {
		items = appendValues(items, d.levels[level])
	}
	items = appendValues(items, d.review)
	return appendValues(items, d.waiting)
}

// Len is the number of items held in total.
func (d *Deck) Len() int {
	return d.Ready() + d.waiting.Size()
}

// Ready is the number of items sitting in buckets.
func (d *Deck) Ready() int {
	n := d.review.Size()
	for _, l := range d.levels {
		n += l.Size()
	}
	return n
}

// Waiting is the number of items parked until their cool-down elapses.
func (d *Deck) Waiting() int {
	return d.waiting.Size()
}

func (d *Deck) bucketFor(it *Item) *doublylinkedlist.List {
	level := it.Card.Level()
	if level >= 0 && level < numLevels {
		return d.levels[level]
	}
	return d.review
}

func popFront(l *doublylinkedlist.List) (*Item, bool) {
	v, ok := l.Get(0)
	if !ok {
		return nil, false
	}
	l.Remove(0)
	return v.(*Item), true
}

func appendValues(dst []*Item, l *doublylinkedlist.List) []*Item {
	it := l.Iterator()
	for it.Next() {
		dst = append(dst, it.Value().(*Item))
	}
	return dst
}

// bySortKey orders items by sort key. Rows sharing a prompt share a key,
// so ties fall back to reading and then answer.
var bySortKey utils.Comparator = func(a, b interface{}) int {
	x, y := a.(*Item), b.(*Item)
	if c := utils.Float64Comparator(x.SortKey(), y.SortKey()); c != 0 {
		return c
	}
	if c := utils.StringComparator(x.Reading, y.Reading); c != 0 {
		return c
	}
	return utils.StringComparator(x.Answer, y.Answer)
}
