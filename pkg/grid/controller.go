package grid

// Controller is the part of an Engine that does not depend on the row type.
// Hosts that drive engines over several row types hold a Controller.
type Controller interface {
	SearchText() string
	SetSearchText(text string)

	Columns() []ColumnInfo
	HasColumn(key string) bool
	IsColumnVisible(key string) bool
	SetColumnVisibility(key string, visible bool)
	ToggleColumnVisibility(key string)
	SetAllColumnsVisible(visible bool)

	Sorting() []SortEntry
	SortDirection(key string) Direction
	SetSort(key string)
	ClearSort()

	Pagination() Pagination
	PageCount() int
	CanPreviousPage() bool
	CanNextPage() bool
	SetPage(index int)
	NextPage()
	PreviousPage()
	FirstPage()
	LastPage()
	SetPageSize(size int)

	IsSelected(id string) bool
	SelectedIDs() []string
	ToggleRowSelection(id string)
	ToggleSelectAll()
	ClearSelection()
	PageSelection() CheckState

	FilteredCount() int
	State() State
}

var _ Controller = (*Engine[struct{}])(nil)

// ColumnInfo describes a column without its accessor.
type ColumnInfo struct {
	Key       string    `json:"key"`
	Header    string    `json:"header"`
	Visible   bool      `json:"visible"`
	Direction Direction `json:"-"`
	Clickable bool      `json:"clickable,omitempty"`
}

// Columns describes every column in display order, hidden ones included.
func (e *Engine[R]) Columns() []ColumnInfo {
	out := make([]ColumnInfo, len(e.columns))
	for i, c := range e.columns {
		out[i] = ColumnInfo{
			Key:       c.Key,
			Header:    c.Header,
			Visible:   e.visibility[c.Key],
			Direction: e.SortDirection(c.Key),
			Clickable: e.clickable[c.Key],
		}
	}
	return out
}

func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}
