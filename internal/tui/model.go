// Package tui is an interactive terminal view of an asset list page.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/pkg/grid"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

const (
	maxColWidth = 24
	minColWidth = 3
	chromeLines = 10
)

var pageSizes = []int{5, 10, 20, 50}

type mode int

const (
	modeNormal mode = iota
	modeSearch
)

// Model drives a Listing from the keyboard.
type Model struct {
	listing pages.Listing
	user    *types.User
	styles  styles

	table  table.Model
	search textinput.Model
	mode   mode

	// colCursor indexes the visible columns; sort and hide act on it.
	colCursor int
	status    string
}

// New creates a model over l. user is shown in the header when set.
func New(l pages.Listing, user *types.User) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search"
	ti.SetValue(l.Table().SearchText())

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(l.Table().Pagination().PageSize+2),
	)
	t.SetStyles(tableStyles())

	m := Model{
		listing: l,
		user:    user,
		styles:  newStyles(),
		table:   t,
		search:  ti,
	}
	m.refresh()
	return m
}

// Run shows the model full screen until the user quits or ctx ends.
func Run(ctx context.Context, l pages.Listing, user *types.User, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(l, user),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-chromeLines, 3))
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeSearch {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.search.Blur()
		m.search.SetValue("")
		m.listing.Table().SetSearchText("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.listing.Table().SearchText() {
		m.listing.Table().SetSearchText(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.listing.Table()
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "left", "h":
		if m.colCursor > 0 {
			m.colCursor--
		}
	case "right", "l":
		if m.colCursor < len(visibleColumns(t))-1 {
			m.colCursor++
		}
	case "s":
		if c, ok := m.currentColumn(); ok {
			t.SetSort(c.Key)
		}
	case "c":
		if c, ok := m.currentColumn(); ok {
			t.ToggleColumnVisibility(c.Key)
		}
	case "C":
		t.SetAllColumnsVisible(true)
	case "n", "pgdown":
		t.NextPage()
	case "p", "pgup":
		t.PreviousPage()
	case "g", "home":
		t.FirstPage()
	case "G", "end":
		t.LastPage()
	case "+":
		t.SetPageSize(nextPageSize(t.Pagination().PageSize, 1))
	case "-":
		t.SetPageSize(nextPageSize(t.Pagination().PageSize, -1))
	case " ", "x":
		if row, ok := m.currentRow(); ok {
			t.ToggleRowSelection(row.ID)
		}
	case "a":
		t.ToggleSelectAll()
	case "enter":
		if row, ok := m.currentRow(); ok {
			m.status = m.rowTarget(row)
		}
	case "N":
		m.listing.Create()
		m.status = "create: " + m.listing.CreateHref()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

// rowTarget is where activating a row leads: its first linked cell, or its
// edit action.
func (m Model) rowTarget(row pages.Row) string {
	for _, c := range row.Cells {
		if href, ok := m.listing.CellHref(c); ok {
			return "open: " + href
		}
	}
	for _, a := range row.Actions {
		if a.Href != "" {
			return strings.ToLower(a.Label) + ": " + a.Href
		}
	}
	return ""
}

func nextPageSize(current, step int) int {
	for i, s := range pageSizes {
		if s == current {
			j := min(max(i+step, 0), len(pageSizes)-1)
			return pageSizes[j]
		}
	}
	return pageSizes[1]
}

func visibleColumns(t grid.Controller) []grid.ColumnInfo {
	var out []grid.ColumnInfo
	for _, c := range t.Columns() {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) currentColumn() (grid.ColumnInfo, bool) {
	cols := visibleColumns(m.listing.Table())
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return grid.ColumnInfo{}, false
	}
	return cols[m.colCursor], true
}

func (m Model) currentRow() (pages.Row, bool) {
	rows := m.listing.Rows()
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return pages.Row{}, false
	}
	return rows[i], true
}

func checkbox(s grid.CheckState) string {
	switch s {
	case grid.Checked:
		return "[x]"
	case grid.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

func sortMark(d grid.Direction) string {
	switch d {
	case grid.Ascending:
		return " ▲"
	case grid.Descending:
		return " ▼"
	default:
		return ""
	}
}

// refresh rebuilds the table widget from the listing.
func (m *Model) refresh() {
	t := m.listing.Table()
	cols := visibleColumns(t)
	if m.colCursor >= len(cols) {
		m.colCursor = max(len(cols)-1, 0)
	}
	rows := m.listing.Rows()

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, checkbox(t.PageSelection()))
	for _, c := range cols {
		headers = append(headers, c.Header+sortMark(c.Direction))
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		mark := grid.Unchecked
		if r.Selected {
			mark = grid.Checked
		}
		row := table.Row{checkbox(mark)}
		for j, c := range r.Cells {
			row = append(row, c.Text)
			widths[j+1] = max(widths[j+1], lipgloss.Width(c.Text))
		}
		tableRows[i] = row
	}

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: min(max(widths[i], minColWidth), maxColWidth)}
	}

	// Rows must never outnumber the columns they are drawn against.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(tableRows)
	if m.table.Cursor() >= len(tableRows) {
		m.table.SetCursor(max(len(tableRows)-1, 0))
	}
}

func (m Model) View() string {
	s := m.styles
	l := m.listing
	t := l.Table()

	crumbs := make([]string, 0, len(l.Crumbs()))
	for _, c := range l.Crumbs() {
		crumbs = append(crumbs, c.Label)
	}

	var b strings.Builder
	b.WriteString(s.crumbs.Render(strings.Join(crumbs, " / ")) + "\n")
	b.WriteString(s.header.Render(l.Header()) + "\n")
	b.WriteString(s.subtitle.Render(l.Subtitle()) + "\n")
	if m.user != nil {
		b.WriteString(s.user.Render("Signed in as "+m.user.DisplayName()) + "\n")
	}

	if m.mode == modeSearch {
		b.WriteString(s.search.Render(m.search.View()) + "\n")
	} else if q := t.SearchText(); q != "" {
		b.WriteString(s.search.Render("/"+q) + "\n")
	} else {
		b.WriteString("\n")
	}

	if len(m.listing.Rows()) == 0 {
		b.WriteString(s.empty.Render("No results.") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	p := t.Pagination()
	current := p.PageIndex + 1
	if t.PageCount() == 0 {
		current = 0
	}
	footer := fmt.Sprintf("Page %d of %d · %d rows · %d selected · %d per page",
		current, t.PageCount(), t.FilteredCount(), len(t.SelectedIDs()), p.PageSize)
	if c, ok := m.currentColumn(); ok {
		footer += " · column: " + c.Header
	}
	b.WriteString(s.footer.Render(footer) + "\n")

	bulk := l.BulkMenu()
	if bulk.Enabled {
		labels := make([]string, len(bulk.Actions))
		for i, a := range bulk.Actions {
			labels[i] = a.Label
		}
		b.WriteString(s.footer.Render(bulk.Label+": "+strings.Join(labels, ", ")) + "\n")
	}
	if m.status != "" {
		b.WriteString(s.status.Render(m.status) + "\n")
	}
	b.WriteString(s.help.Render("/ search · ←/→ column · s sort · c hide · C show all · n/p page · +/- size · space select · a all · N new · q quit"))
	return s.app.Render(b.String())
}
