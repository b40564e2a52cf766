package grid

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 10

// PageSizes lists the page sizes SetPageSize accepts.
var PageSizes = []int{5, 10, 20, 50}

func isPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Pagination returns the current page window.
func (e *Engine[R]) Pagination() Pagination {
	return Pagination{PageIndex: e.pageIndex, PageSize: e.pageSize}
}

// PageCount returns ceil(filtered rows / page size). It is zero when no row
// passes the filter.
func (e *Engine[R]) PageCount() int {
	n := len(e.view)
	return (n + e.pageSize - 1) / e.pageSize
}

// CanPreviousPage reports whether a page precedes the current one.
func (e *Engine[R]) CanPreviousPage() bool {
	return e.pageIndex > 0
}

// CanNextPage reports whether a page follows the current one.
func (e *Engine[R]) CanNextPage() bool {
	return e.pageIndex+1 < e.PageCount()
}

// SetPage moves to page index. Indices outside [0, PageCount) are ignored,
// except 0 which is always accepted.
func (e *Engine[R]) SetPage(index int) {
	if index < 0 || (index > 0 && index >= e.PageCount()) {
		return
	}
	if index == e.pageIndex {
		return
	}
	e.pageIndex = index
	e.notify(ChangePagination)
}

// NextPage advances one page. It does nothing on the last page.
func (e *Engine[R]) NextPage() {
	if e.CanNextPage() {
		e.SetPage(e.pageIndex + 1)
	}
}

// PreviousPage goes back one page. It does nothing on the first page.
func (e *Engine[R]) PreviousPage() {
	if e.CanPreviousPage() {
		e.SetPage(e.pageIndex - 1)
	}
}

// FirstPage moves to the first page.
func (e *Engine[R]) FirstPage() {
	e.SetPage(0)
}

// LastPage moves to the last page.
func (e *Engine[R]) LastPage() {
	if n := e.PageCount(); n > 0 {
		e.SetPage(n - 1)
	}
}

// SetPageSize changes the page size to one of PageSizes; other values are
// ignored. The first row of the current page stays on screen.
func (e *Engine[R]) SetPageSize(size int) {
	if !isPageSize(size) || size == e.pageSize {
		return
	}
	top := e.pageIndex * e.pageSize
	e.pageSize = size
	e.pageIndex = top / size
	e.clampPage()
	e.notify(ChangePagination)
}

// pageBounds returns the [start, end) range of view rows on the current page.
func (e *Engine[R]) pageBounds() (int, int) {
	start := e.pageIndex * e.pageSize
	if start >= len(e.view) {
		return len(e.view), len(e.view)
	}
	end := start + e.pageSize
	if end > len(e.view) {
		end = len(e.view)
	}
	return start, end
}

// clampPage resets to the first page when the current one starts past the
// end of the filtered rows.
func (e *Engine[R]) clampPage() {
	if e.pageIndex*e.pageSize >= len(e.view) {
		e.pageIndex = 0
	}
}
