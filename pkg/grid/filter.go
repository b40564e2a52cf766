package grid

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s case-folded for case-insensitive comparison. A Caser keeps
// state between calls, so each call builds its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// SearchText returns the current free-text filter.
func (e *Engine[R]) SearchText() string {
	return e.search
}

// SetSearchText replaces the free-text filter. A row is kept when any of its
// columns, visible or not, contains text case-insensitively. The empty string
// keeps every row. Changing the text moves back to the first page.
func (e *Engine[R]) SetSearchText(text string) {
	if text == e.search {
		return
	}
	e.search = text
	e.refresh()
	e.pageIndex = 0
	e.notify(ChangeSearch)
}

// Matches reports whether row passes the current search filter.
func (e *Engine[R]) Matches(row R) bool {
	return e.matches(row, Fold(e.search))
}

func (e *Engine[R]) filter() []int {
	view := make([]int, 0, len(e.rows))
	needle := Fold(e.search)
	for i, r := range e.rows {
		if e.matches(r, needle) {
			view = append(view, i)
		}
	}
	return view
}

func (e *Engine[R]) matches(row R, needle string) bool {
	if needle == "" {
		return true
	}
	for _, c := range e.columns {
		v := c.Accessor(row)
		if v.IsNull() {
			continue
		}
		if strings.Contains(Fold(v.Text()), needle) {
			return true
		}
	}
	return false
}
