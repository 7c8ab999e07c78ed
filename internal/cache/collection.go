// Package cache holds the last known server state for one parent scope.
//
// A Collection is owned by the screen that created it and is only ever
// mutated from workflow completions on the program loop, so there is no
// locking. Order is server/insertion order; display may re-sort.
package cache

// Record is anything with a stable id unique within its parent scope.
type Record interface {
	RecordID() string
}

type Collection[R Record] struct {
	records []R
	index   map[string]int
}

func New[R Record]() *Collection[R] {
	return &Collection[R]{index: map[string]int{}}
}

// ReplaceAll swaps in a fresh server snapshot. Later duplicates of an id win,
// matching "last write from the server is truth".
func (c *Collection[R]) ReplaceAll(records []R) {
	c.records = c.records[:0]
	c.index = map[string]int{}
	for _, r := range records {
		c.Upsert(r)
	}
}

// Upsert overwrites in place when the id is present (position preserved),
// else appends.
func (c *Collection[R]) Upsert(r R) {
	if i, ok := c.index[r.RecordID()]; ok {
		c.records[i] = r
		return
	}
	c.index[r.RecordID()] = len(c.records)
	c.records = append(c.records, r)
}

// RemoveByID deletes the record if present. An absent id is a no-op: a delete
// completion may arrive after a refresh snapshot that no longer has the row.
func (c *Collection[R]) RemoveByID(id string) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.records); j++ {
		c.index[c.records[j].RecordID()] = j
	}
}

func (c *Collection[R]) Get(id string) (R, bool) {
	var zero R
	i, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return c.records[i], true
}

func (c *Collection[R]) Len() int { return len(c.records) }

// Records returns a copy; callers may re-sort freely.
func (c *Collection[R]) Records() []R {
	out := make([]R, len(c.records))
	copy(out, c.records)
	return out
}
