package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/pkg/grid"
	"github.com/mesh-intelligence/assetdesk/pkg/page"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// checkbox renders a selection state.
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

func visibleColumns(t grid.Controller) []grid.ColumnInfo {
	var out []grid.ColumnInfo
	for _, c := range t.Columns() {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// renderListing writes a listing as a text page: breadcrumbs, header,
// table and footer.
func renderListing(w io.Writer, l pages.Listing, user *types.User) error {
	t := l.Table()

	crumbs := make([]string, 0, len(l.Crumbs()))
	for _, c := range l.Crumbs() {
		crumbs = append(crumbs, c.Label)
	}
	fmt.Fprintln(w, strings.Join(crumbs, " / "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, l.Header())
	fmt.Fprintln(w, l.Subtitle())
	if user != nil {
		fmt.Fprintf(w, "Signed in as %s\n", user.DisplayName())
	}
	fmt.Fprintln(w)

	rows := l.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		cols := visibleColumns(t)
		header := []string{checkbox(t.PageSelection())}
		for _, c := range cols {
			header = append(header, c.Header+sortMark(c.Direction))
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for _, r := range rows {
			line := []string{checkbox(selectionState(r.Selected))}
			for _, c := range r.Cells {
				line = append(line, c.Text)
			}
			fmt.Fprintln(tw, strings.Join(line, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	p := t.Pagination()
	current := p.PageIndex + 1
	if t.PageCount() == 0 {
		current = 0
	}
	fmt.Fprintf(w, "Page %d of %d (%d rows, %d selected)\n", current, t.PageCount(), t.FilteredCount(), len(t.SelectedIDs()))
	fmt.Fprintf(w, "Create: %s\n", l.CreateHref())
	fmt.Fprintln(w, bulkLine(l.BulkMenu()))
	return nil
}

func selectionState(selected bool) grid.CheckState {
	if selected {
		return grid.Checked
	}
	return grid.Unchecked
}

func bulkLine(m page.BulkMenu) string {
	if !m.Enabled {
		return m.Label + " (disabled)"
	}
	labels := make([]string, len(m.Actions))
	for i, a := range m.Actions {
		labels[i] = a.Label
	}
	return m.Label + ": " + strings.Join(labels, ", ")
}

// listingDoc is the JSON form of a listing.
type listingDoc struct {
	Title         string        `json:"title"`
	Path          string        `json:"path"`
	User          *types.User   `json:"user,omitempty"`
	Crumbs        []page.Crumb  `json:"crumbs"`
	Columns       []columnDoc   `json:"columns"`
	Rows          []rowDoc      `json:"rows"`
	State         grid.State    `json:"state"`
	PageCount     int           `json:"page_count"`
	FilteredCount int           `json:"filtered_count"`
	PageSelection string        `json:"page_selection"`
	CreateHref    string        `json:"create_href"`
	BulkMenu      page.BulkMenu `json:"bulk_menu"`
}

type columnDoc struct {
	grid.ColumnInfo
	Sort string `json:"sort"`
}

type rowDoc struct {
	ID       string                `json:"id"`
	Selected bool                  `json:"selected"`
	Cells    map[string]grid.Value `json:"cells"`
	Links    map[string]string     `json:"links,omitempty"`
	Actions  []page.RowAction      `json:"actions"`
}

func newListingDoc(l pages.Listing, user *types.User) listingDoc {
	t := l.Table()
	doc := listingDoc{
		Title:         l.Title(),
		Path:          l.Path(),
		User:          user,
		Crumbs:        l.Crumbs(),
		State:         t.State(),
		PageCount:     t.PageCount(),
		FilteredCount: t.FilteredCount(),
		PageSelection: t.PageSelection().String(),
		CreateHref:    l.CreateHref(),
		BulkMenu:      l.BulkMenu(),
		Rows:          []rowDoc{},
	}
	for _, c := range t.Columns() {
		doc.Columns = append(doc.Columns, columnDoc{ColumnInfo: c, Sort: c.Direction.String()})
	}
	for _, r := range l.Rows() {
		rd := rowDoc{ID: r.ID, Selected: r.Selected, Cells: map[string]grid.Value{}, Actions: r.Actions}
		for _, c := range r.Cells {
			rd.Cells[c.Key] = c.Value
			if href, ok := l.CellHref(c); ok {
				if rd.Links == nil {
					rd.Links = map[string]string{}
				}
				rd.Links[c.Key] = href
			}
		}
		doc.Rows = append(doc.Rows, rd)
	}
	return doc
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("encode output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderFields writes an asset as aligned header/value pairs.
func renderFields(w io.Writer, fields []pages.Field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Header, f.Value.Text())
	}
	return tw.Flush()
}
