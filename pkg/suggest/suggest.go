// Package suggest implements the asset search box: a fixed suggestion list
// filtered by title as the user types, with a keyboard highlight that wraps
// at both ends.
package suggest

import "github.com/mesh-intelligence/assetdesk/pkg/grid"

// Suggestion is one entry of the list.
type Suggestion struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	DisplayCategory string `json:"display_category"`
}

// Box holds the query and highlight over a suggestion list. The zero
// highlight is -1, meaning nothing is highlighted.
type Box struct {
	all       []Suggestion
	query     string
	open      bool
	options   []Suggestion
	highlight int
}

// New creates a closed box over items.
func New(items []Suggestion) *Box {
	b := &Box{all: items, highlight: -1}
	b.options = items
	return b
}

// Filter returns the items whose title contains query, case-insensitively.
// An empty query returns every item.
func Filter(items []Suggestion, query string) []Suggestion {
	if query == "" {
		return items
	}
	var out []Suggestion
	for _, it := range items {
		if grid.ContainsFold(it.Title, query) {
			out = append(out, it)
		}
	}
	return out
}

// Query returns the current input text.
func (b *Box) Query() string { return b.query }

// IsOpen reports whether the list is showing.
func (b *Box) IsOpen() bool { return b.open }

// Options returns the suggestions matching the current query.
func (b *Box) Options() []Suggestion { return b.options }

// Highlighted returns the highlighted index, or -1.
func (b *Box) Highlighted() int { return b.highlight }

// SetQuery replaces the input text, opens the list and clears the highlight.
func (b *Box) SetQuery(q string) {
	b.query = q
	b.options = Filter(b.all, q)
	b.open = true
	b.highlight = -1
}

// Open shows the list without changing the query.
func (b *Box) Open() { b.open = true }

// Close hides the list.
func (b *Box) Close() { b.open = false }

// Down moves the highlight to the next option, wrapping to the first.
// Nothing happens while the list is closed or empty.
func (b *Box) Down() {
	n := len(b.options)
	if !b.open || n == 0 {
		return
	}
	if b.highlight < n-1 {
		b.highlight++
	} else {
		b.highlight = 0
	}
}

// Up moves the highlight to the previous option, wrapping to the last.
func (b *Box) Up() {
	n := len(b.options)
	if !b.open || n == 0 {
		return
	}
	if b.highlight > 0 {
		b.highlight--
	} else {
		b.highlight = n - 1
	}
}

// Select takes the highlighted option: the query becomes its title and the
// list closes. ok is false when nothing is highlighted.
func (b *Box) Select() (s Suggestion, ok bool) {
	if !b.open || b.highlight < 0 || b.highlight >= len(b.options) {
		return Suggestion{}, false
	}
	s = b.options[b.highlight]
	b.Choose(s)
	return s, true
}

// Choose takes s as if it had been clicked.
func (b *Box) Choose(s Suggestion) {
	b.query = s.Title
	b.options = Filter(b.all, s.Title)
	b.open = false
	b.highlight = -1
}
