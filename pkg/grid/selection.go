package grid

// CheckState is the tri-state of the page-level select-all control.
type CheckState int

// Check states for PageSelection.
const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

// IsSelected reports whether the row with id is selected.
func (e *Engine[R]) IsSelected(id string) bool {
	return e.selected[id]
}

// SelectedIDs returns the selected row ids in lexical order.
func (e *Engine[R]) SelectedIDs() []string {
	return sortedKeys(e.selected)
}

// SelectedRows returns the selected rows in the caller's order.
func (e *Engine[R]) SelectedRows() []R {
	var out []R
	for i, id := range e.ids {
		if e.selected[id] {
			out = append(out, e.rows[i])
		}
	}
	return out
}

// ToggleRowSelection flips the selection of the row with id. Ids that do not
// name a row are ignored.
func (e *Engine[R]) ToggleRowSelection(id string) {
	if !e.hasRow(id) {
		return
	}
	if e.selected[id] {
		delete(e.selected, id)
	} else {
		e.selected[id] = true
	}
	e.notify(ChangeSelection)
}

// ToggleSelectAll selects every row of the current page, or deselects them
// when all are already selected. Rows on other pages keep their selection.
func (e *Engine[R]) ToggleSelectAll() {
	page := e.pageIDs()
	if len(page) == 0 {
		return
	}
	all := e.allSelected(page)
	for _, id := range page {
		if all {
			delete(e.selected, id)
		} else {
			e.selected[id] = true
		}
	}
	e.notify(ChangeSelection)
}

// ClearSelection deselects every row.
func (e *Engine[R]) ClearSelection() {
	if len(e.selected) == 0 {
		return
	}
	e.selected = make(map[string]bool)
	e.notify(ChangeSelection)
}

// PageSelection reports the select-all state for the current page.
func (e *Engine[R]) PageSelection() CheckState {
	page := e.pageIDs()
	if len(page) > 0 && e.allSelected(page) {
		return Checked
	}
	for _, id := range page {
		if e.selected[id] {
			return Indeterminate
		}
	}
	return Unchecked
}

func (e *Engine[R]) allSelected(ids []string) bool {
	for _, id := range ids {
		if !e.selected[id] {
			return false
		}
	}
	return true
}

func (e *Engine[R]) pageIDs() []string {
	start, end := e.pageBounds()
	ids := make([]string, 0, end-start)
	for _, idx := range e.view[start:end] {
		ids = append(ids, e.ids[idx])
	}
	return ids
}

func (e *Engine[R]) hasRow(id string) bool {
	for _, rid := range e.ids {
		if rid == id {
			return true
		}
	}
	return false
}
