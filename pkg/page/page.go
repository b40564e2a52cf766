// Package page composes the chrome of an asset list page around one grid
// engine: breadcrumbs, header, the create action, the bulk-action menu and
// the per-row actions. A Page owns no state beyond what it forwards to its
// engine and never mutates data; actions resolve to navigation targets.
package page

import (
	"net/url"
	"strings"

	"github.com/mesh-intelligence/assetdesk/pkg/grid"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// Breadcrumb is one entry of the trail above the page header. An entry
// without Href is the current page.
type Breadcrumb struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

// Current reports whether the breadcrumb renders as the current page.
func (b Breadcrumb) Current() bool {
	return b.Href == ""
}

// BulkAction is an entry of the bulk-action menu.
type BulkAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Props configures a Page.
type Props[R any] struct {
	Title    string
	Header   string
	Subtitle string

	// Path is the page location, such as "/vehicles". Create, cell links and
	// row actions are relative to it.
	Path string

	Columns     []grid.Column[R]
	Data        []R
	Breadcrumbs []Breadcrumb

	VisibleCols      []string
	ClickableColumns []string
	BulkActions      []BulkAction

	// Forwarded to the engine.
	RowKey   func(R) string
	PageSize int
	OnChange func(grid.Change)
}

// Navigator performs client-side navigation.
type Navigator interface {
	Navigate(href string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(href string)

// Navigate calls f(href).
func (f NavigatorFunc) Navigate(href string) { f(href) }

// Page is an asset list page bound to one engine instance.
type Page[R any] struct {
	props  Props[R]
	engine *grid.Engine[R]
	nav    Navigator
}

// New builds the page and its engine with search, multi-select, column
// toggling and row actions enabled. nav may be nil when the host never
// calls Create.
func New[R any](props Props[R], nav Navigator) *Page[R] {
	props.Path = strings.TrimRight(props.Path, "/")
	engine := grid.New(props.Data, props.Columns, grid.Options[R]{
		EnableSearch:       true,
		EnableMultiSelect:  true,
		EnableColumnToggle: true,
		EnableRowActions:   true,
		VisibleCols:        props.VisibleCols,
		ClickableColumns:   props.ClickableColumns,
		RowKey:             props.RowKey,
		PageSize:           props.PageSize,
		OnChange:           props.OnChange,
	})
	return &Page[R]{props: props, engine: engine, nav: nav}
}

// Props returns the page configuration.
func (p *Page[R]) Props() Props[R] {
	return p.props
}

// Table returns the page's engine.
func (p *Page[R]) Table() *grid.Engine[R] {
	return p.engine
}

// CreateHref is the create form location for this page.
func (p *Page[R]) CreateHref() string {
	return p.props.Path + "/create"
}

// Create navigates to the create form.
func (p *Page[R]) Create() {
	if p.nav != nil {
		p.nav.Navigate(p.CreateHref())
	}
}

// BulkMenu is the bulk-action control. With no actions it renders as a
// disabled button.
type BulkMenu struct {
	Label   string       `json:"label"`
	Enabled bool         `json:"enabled"`
	Actions []BulkAction `json:"actions,omitempty"`
}

// BulkMenu returns the bulk-action control for the page.
func (p *Page[R]) BulkMenu() BulkMenu {
	m := BulkMenu{Label: "Bulk Actions"}
	if len(p.props.BulkActions) > 0 {
		m.Enabled = true
		m.Actions = p.props.BulkActions
	}
	return m
}

// Crumb is a breadcrumb in render order. Separator is set on every item
// but the last.
type Crumb struct {
	Breadcrumb
	Separator bool `json:"separator"`
}

// Crumbs returns the breadcrumb trail.
func (p *Page[R]) Crumbs() []Crumb {
	out := make([]Crumb, len(p.props.Breadcrumbs))
	for i, b := range p.props.Breadcrumbs {
		out[i] = Crumb{Breadcrumb: b, Separator: i < len(p.props.Breadcrumbs)-1}
	}
	return out
}

// CellHref returns the link target of a clickable cell: the page path
// followed by the escaped cell text. Non-clickable and empty cells have no
// link.
func (p *Page[R]) CellHref(cell grid.Cell) (string, bool) {
	if !cell.Clickable || cell.Value.IsNull() || cell.Text == "" {
		return "", false
	}
	return p.props.Path + "/" + url.PathEscape(cell.Text), true
}

// RowActionKind distinguishes row menu entries.
type RowActionKind int

// Row menu entries.
const (
	ActionEdit RowActionKind = iota
	ActionDelete
)

// RowAction is an entry of a row's action menu.
type RowAction struct {
	Kind  RowActionKind `json:"-"`
	Label string        `json:"label"`
	Href  string        `json:"href,omitempty"`
}

// RowActions returns the Edit and Delete entries for a row. Delete carries
// no location; the host confirms and performs it.
func (p *Page[R]) RowActions(row grid.ViewRow[R]) []RowAction {
	return []RowAction{
		{Kind: ActionEdit, Label: "Edit", Href: p.props.Path + "/" + url.PathEscape(row.ID) + "/edit"},
		{Kind: ActionDelete, Label: "Delete"},
	}
}

// Session supplies the signed-in user. It is injected by the host so the
// page never redirects on its own.
type Session interface {
	CurrentUser() *types.User
	IsLoading() bool
	LoginRedirect() (string, bool)
}

// ViewKind tells the host what to render.
type ViewKind int

// View kinds returned by Build.
const (
	ViewReady ViewKind = iota
	ViewLoading
	ViewRedirect
)

func (k ViewKind) String() string {
	switch k {
	case ViewReady:
		return "ready"
	case ViewLoading:
		return "loading"
	case ViewRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// View is the outcome of Build.
type View struct {
	Kind     ViewKind
	Location string      // Set for ViewRedirect.
	User     *types.User // Nil when anonymous.
}

// Build resolves what the page shows for the given session. A pending
// login redirect wins over loading. A nil session renders the page
// anonymously.
func (p *Page[R]) Build(s Session) View {
	if s == nil {
		return View{Kind: ViewReady}
	}
	if loc, ok := s.LoginRedirect(); ok {
		return View{Kind: ViewRedirect, Location: loc}
	}
	if s.IsLoading() {
		return View{Kind: ViewLoading}
	}
	return View{Kind: ViewReady, User: s.CurrentUser()}
}
