// Package grid implements a render-agnostic list/table engine. Given an
// ordered sequence of rows and column descriptors it derives a filtered,
// sorted, paginated, selectable view and reports every state change to the
// host. All operations are synchronous recomputations over the in-memory
// rows; the engine never returns errors and ignores unknown column keys and
// row ids.
//
// An Engine is not safe for concurrent use. Each instance owns its state
// exclusively for the lifetime of the view that created it.
package grid

import (
	"sort"
	"strconv"
)

// Column describes how to read and label one field of a row.
type Column[R any] struct {
	Key      string        // Identifies the column in visibility and sort state.
	Header   string        // Display label.
	Accessor func(R) Value // Reads the cell value from a row.
}

// Options configures an Engine. The zero value enables nothing and shows
// every column with the default page size.
type Options[R any] struct {
	EnableSearch       bool
	EnableMultiSelect  bool
	EnableColumnToggle bool
	EnableRowActions   bool

	// VisibleCols seeds column visibility. When nil every column is visible;
	// otherwise only the listed columns are.
	VisibleCols []string

	// ClickableColumns lists columns whose cells render as links.
	ClickableColumns []string

	// RowKey supplies a stable row identifier. When nil a row is identified
	// by its position in the sequence passed to New or SetRows.
	RowKey func(R) string

	// PageSize is the initial page size. Values outside PageSizes fall back
	// to DefaultPageSize.
	PageSize int

	// OnChange is called after every mutation that changed the state.
	OnChange func(Change)
}

// ChangeKind identifies which part of the state a mutation touched.
type ChangeKind int

// Change kinds reported through Options.OnChange.
const (
	ChangeSearch ChangeKind = iota
	ChangeVisibility
	ChangeSort
	ChangePagination
	ChangeSelection
	ChangeData
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSearch:
		return "search"
	case ChangeVisibility:
		return "visibility"
	case ChangeSort:
		return "sort"
	case ChangePagination:
		return "pagination"
	case ChangeSelection:
		return "selection"
	case ChangeData:
		return "data"
	default:
		return "unknown"
	}
}

// Change is delivered to Options.OnChange with a snapshot of the new state.
type Change struct {
	Kind  ChangeKind
	State State
}

// Pagination is the current page window.
type Pagination struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// State is a snapshot of the engine's table state.
type State struct {
	SearchText       string          `json:"search_text"`
	ColumnVisibility map[string]bool `json:"column_visibility"`
	Sorting          []SortEntry     `json:"sorting"`
	Pagination       Pagination      `json:"pagination"`
	SelectedRowIDs   []string        `json:"selected_row_ids"`
}

// Cell is one visible column of a rendered row.
type Cell struct {
	Key       string
	Header    string
	Value     Value
	Text      string
	Clickable bool
}

// ViewRow is a row of the derived view paired with its visible cells.
type ViewRow[R any] struct {
	ID    string
	Index int // Position in the caller's row sequence.
	Data  R
	Cells []Cell
}

// Engine owns the table state for one view over a row sequence.
type Engine[R any] struct {
	rows      []R
	ids       []string
	columns   []Column[R]
	opts      Options[R]
	clickable map[string]bool

	search     string
	visibility map[string]bool
	sorting    []SortEntry
	pageIndex  int
	pageSize   int
	selected   map[string]bool

	// view holds row indices after filter and sort, before pagination.
	view []int
}

// New creates an Engine over rows and columns. The rows slice is not copied
// or modified.
func New[R any](rows []R, columns []Column[R], opts Options[R]) *Engine[R] {
	e := &Engine[R]{
		columns:   columns,
		opts:      opts,
		clickable: make(map[string]bool, len(opts.ClickableColumns)),
		selected:  make(map[string]bool),
		pageSize:  DefaultPageSize,
	}
	for _, key := range opts.ClickableColumns {
		e.clickable[key] = true
	}
	if isPageSize(opts.PageSize) {
		e.pageSize = opts.PageSize
	}
	e.visibility = defaultVisibility(columns, opts.VisibleCols)
	e.setRows(rows)
	return e
}

// Options returns the configuration the engine was created with.
func (e *Engine[R]) Options() Options[R] {
	return e.opts
}

// SetRows replaces the row sequence and recomputes the view. Selection is
// kept as is; callers that need a clean selection call ClearSelection.
func (e *Engine[R]) SetRows(rows []R) {
	e.setRows(rows)
	e.clampPage()
	e.notify(ChangeData)
}

func (e *Engine[R]) setRows(rows []R) {
	e.rows = rows
	e.ids = make([]string, len(rows))
	for i, r := range rows {
		if e.opts.RowKey != nil {
			e.ids[i] = e.opts.RowKey(r)
		} else {
			e.ids[i] = strconv.Itoa(i)
		}
	}
	e.refresh()
}

// Rows returns the caller's row sequence.
func (e *Engine[R]) Rows() []R {
	return e.rows
}

// AllColumns returns every column descriptor in display order, including
// hidden ones.
func (e *Engine[R]) AllColumns() []Column[R] {
	return e.columns
}

// HasColumn reports whether key names a column.
func (e *Engine[R]) HasColumn(key string) bool {
	_, ok := e.column(key)
	return ok
}

func (e *Engine[R]) column(key string) (Column[R], bool) {
	for _, c := range e.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[R]{}, false
}

// IsClickable reports whether cells of the column render as links.
func (e *Engine[R]) IsClickable(key string) bool {
	return e.clickable[key]
}

// FilteredRows returns the rows after filtering and sorting, before
// pagination.
func (e *Engine[R]) FilteredRows() []R {
	out := make([]R, len(e.view))
	for i, idx := range e.view {
		out[i] = e.rows[idx]
	}
	return out
}

// FilteredCount returns the number of rows that pass the search filter.
func (e *Engine[R]) FilteredCount() int {
	return len(e.view)
}

// VisibleRows returns the rows of the current page, in order, each paired
// with its visible cells.
func (e *Engine[R]) VisibleRows() []ViewRow[R] {
	start, end := e.pageBounds()
	cols := e.VisibleColumns()
	out := make([]ViewRow[R], 0, end-start)
	for _, idx := range e.view[start:end] {
		row := e.rows[idx]
		cells := make([]Cell, len(cols))
		for i, c := range cols {
			v := c.Accessor(row)
			cells[i] = Cell{
				Key:       c.Key,
				Header:    c.Header,
				Value:     v,
				Text:      v.Text(),
				Clickable: e.clickable[c.Key],
			}
		}
		out = append(out, ViewRow[R]{
			ID:    e.ids[idx],
			Index: idx,
			Data:  row,
			Cells: cells,
		})
	}
	return out
}

// State returns a snapshot of the current table state.
func (e *Engine[R]) State() State {
	vis := make(map[string]bool, len(e.visibility))
	for k, v := range e.visibility {
		vis[k] = v
	}
	sorting := make([]SortEntry, len(e.sorting))
	copy(sorting, e.sorting)
	return State{
		SearchText:       e.search,
		ColumnVisibility: vis,
		Sorting:          sorting,
		Pagination:       Pagination{PageIndex: e.pageIndex, PageSize: e.pageSize},
		SelectedRowIDs:   e.SelectedIDs(),
	}
}

// refresh recomputes the filtered and sorted view.
func (e *Engine[R]) refresh() {
	view := e.filter()
	e.sortView(view)
	e.view = view
}

func (e *Engine[R]) notify(kind ChangeKind) {
	if e.opts.OnChange != nil {
		e.opts.OnChange(Change{Kind: kind, State: e.State()})
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
