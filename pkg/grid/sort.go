package grid

import "sort"

// Direction is the sort direction of a column.
type Direction int

// Sort directions. SetSort cycles a column through them in this order.
const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// next returns the direction after d in the none -> asc -> desc cycle.
func (d Direction) next() Direction {
	switch d {
	case None:
		return Ascending
	case Ascending:
		return Descending
	default:
		return None
	}
}

// SortEntry is one element of the sort state.
type SortEntry struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Sorting returns the active sort entries. At most one is present.
func (e *Engine[R]) Sorting() []SortEntry {
	out := make([]SortEntry, len(e.sorting))
	copy(out, e.sorting)
	return out
}

// SortDirection returns the direction currently applied to key.
func (e *Engine[R]) SortDirection(key string) Direction {
	for _, s := range e.sorting {
		if s.Key == key {
			return s.Direction
		}
	}
	return None
}

// SetSort advances the sort direction of key through none, ascending and
// descending. Sorting another column starts it at ascending and clears the
// previous one. Unknown keys are ignored.
func (e *Engine[R]) SetSort(key string) {
	if !e.HasColumn(key) {
		return
	}
	next := e.SortDirection(key).next()
	if next == None {
		e.sorting = nil
	} else {
		e.sorting = []SortEntry{{Key: key, Direction: next}}
	}
	e.refresh()
	e.clampPage()
	e.notify(ChangeSort)
}

// ClearSort restores the original filtered order.
func (e *Engine[R]) ClearSort() {
	if len(e.sorting) == 0 {
		return
	}
	e.sorting = nil
	e.refresh()
	e.notify(ChangeSort)
}

// sortView orders view in place by the active sort entry. The sort is stable
// so ties keep their original relative order. Null values sort last in both
// directions.
func (e *Engine[R]) sortView(view []int) {
	if len(e.sorting) == 0 {
		return
	}
	entry := e.sorting[0]
	col, ok := e.column(entry.Key)
	if !ok || entry.Direction == None {
		return
	}
	keys := make([]Value, len(e.rows))
	for _, idx := range view {
		keys[idx] = col.Accessor(e.rows[idx])
	}
	desc := entry.Direction == Descending
	sort.SliceStable(view, func(i, j int) bool {
		a, b := keys[view[i]], keys[view[j]]
		switch {
		case a.IsNull() && b.IsNull():
			return false
		case a.IsNull():
			return false
		case b.IsNull():
			return true
		}
		c := compareValues(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}
