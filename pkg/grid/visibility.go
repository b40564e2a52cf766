package grid

// defaultVisibility shows every column, or only the allow-listed ones when
// allow is non-nil.
func defaultVisibility[R any](columns []Column[R], allow []string) map[string]bool {
	vis := make(map[string]bool, len(columns))
	var allowed map[string]bool
	if allow != nil {
		allowed = make(map[string]bool, len(allow))
		for _, k := range allow {
			allowed[k] = true
		}
	}
	for _, c := range columns {
		vis[c.Key] = allowed == nil || allowed[c.Key]
	}
	return vis
}

// IsColumnVisible reports whether the column is rendered.
func (e *Engine[R]) IsColumnVisible(key string) bool {
	return e.visibility[key]
}

// VisibleColumns returns the rendered columns in display order.
func (e *Engine[R]) VisibleColumns() []Column[R] {
	out := make([]Column[R], 0, len(e.columns))
	for _, c := range e.columns {
		if e.visibility[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// SetColumnVisibility shows or hides a column. Row data is untouched; only
// the rendered projection changes. Unknown keys are ignored.
func (e *Engine[R]) SetColumnVisibility(key string, visible bool) {
	if !e.HasColumn(key) || e.visibility[key] == visible {
		return
	}
	e.visibility[key] = visible
	e.notify(ChangeVisibility)
}

// ToggleColumnVisibility flips the visibility of a column.
func (e *Engine[R]) ToggleColumnVisibility(key string) {
	if !e.HasColumn(key) {
		return
	}
	e.SetColumnVisibility(key, !e.visibility[key])
}

// SetAllColumnsVisible shows or hides every column at once.
func (e *Engine[R]) SetAllColumnsVisible(visible bool) {
	changed := false
	for _, c := range e.columns {
		if e.visibility[c.Key] != visible {
			e.visibility[c.Key] = visible
			changed = true
		}
	}
	if changed {
		e.notify(ChangeVisibility)
	}
}
