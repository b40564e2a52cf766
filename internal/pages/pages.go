// Package pages defines the asset list pages of the application: which
// columns each asset type has, which are shown by default, and the page
// chrome around them. It loads rows from a catalog and hands the host a
// Listing that does not depend on the row type.
package pages

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/pkg/grid"
	"github.com/mesh-intelligence/assetdesk/pkg/page"
	"github.com/mesh-intelligence/assetdesk/pkg/suggest"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// ErrUnknownAsset is returned for an asset path segment with no page.
var ErrUnknownAsset = errors.New("unknown asset type")

// Row is one rendered row of a Listing.
type Row struct {
	ID       string           `json:"id"`
	Cells    []grid.Cell      `json:"-"`
	Selected bool             `json:"selected"`
	Actions  []page.RowAction `json:"actions"`
	Record   any              `json:"record"`
}

// Listing is an asset list page with its row type erased.
type Listing interface {
	Table() grid.Controller
	Title() string
	Header() string
	Subtitle() string
	Path() string

	Rows() []Row
	SelectedRecords() []any
	Crumbs() []page.Crumb
	BulkMenu() page.BulkMenu
	CreateHref() string
	Create()
	CellHref(cell grid.Cell) (string, bool)
	Build(s page.Session) page.View
}

// Options tunes the page a Listing is built on.
type Options struct {
	// Filter is passed to Table.Fetch when loading rows.
	Filter map[string]any

	PageSize  int
	Navigator page.Navigator
	OnChange  func(grid.Change)
}

type listing[R any] struct {
	*page.Page[R]
}

func (l listing[R]) Table() grid.Controller { return l.Page.Table() }
func (l listing[R]) Title() string          { return l.Props().Title }
func (l listing[R]) Header() string         { return l.Props().Header }
func (l listing[R]) Subtitle() string       { return l.Props().Subtitle }
func (l listing[R]) Path() string           { return l.Props().Path }

func (l listing[R]) Rows() []Row {
	e := l.Page.Table()
	view := e.VisibleRows()
	out := make([]Row, len(view))
	for i, r := range view {
		out[i] = Row{
			ID:       r.ID,
			Cells:    r.Cells,
			Selected: e.IsSelected(r.ID),
			Actions:  l.RowActions(r),
			Record:   r.Data,
		}
	}
	return out
}

func (l listing[R]) SelectedRecords() []any {
	rows := l.Page.Table().SelectedRows()
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// Open loads every asset of the given kind from the catalog and builds its
// page. asset is a page path segment such as "vehicles" or "battery-packs".
func Open(cat types.Catalog, asset string, opts Options) (Listing, error) {
	name, ok := types.TableForAsset(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, asset)
	}
	tbl, err := cat.GetTable(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	records, err := tbl.Fetch(opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}

	switch name {
	case types.VehiclesTable:
		props := VehiclesProps(collect[*types.Vehicle](records))
		applyOptions(&props, opts)
		return listing[*types.Vehicle]{page.New(props, opts.Navigator)}, nil
	default:
		props := BatteryPacksProps(collect[*types.BatteryPack](records))
		applyOptions(&props, opts)
		return listing[*types.BatteryPack]{page.New(props, opts.Navigator)}, nil
	}
}

func applyOptions[R any](props *page.Props[R], opts Options) {
	props.PageSize = opts.PageSize
	props.OnChange = opts.OnChange
}

func collect[R any](records []any) []R {
	out := make([]R, 0, len(records))
	for _, rec := range records {
		if r, ok := rec.(R); ok {
			out = append(out, r)
		}
	}
	return out
}

func dashboardCrumbs(current string) []page.Breadcrumb {
	return []page.Breadcrumb{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: current},
	}
}

// VehiclesProps is the vehicles page over rows.
func VehiclesProps(rows []*types.Vehicle) page.Props[*types.Vehicle] {
	return page.Props[*types.Vehicle]{
		Title:            "Vehicles",
		Header:           "Vehicles",
		Subtitle:         "Every vehicle in the fleet with its current status.",
		Path:             types.AssetPath(types.VehiclesTable),
		Columns:          VehicleColumns(),
		Data:             rows,
		Breadcrumbs:      dashboardCrumbs("Vehicles"),
		VisibleCols:      VehicleVisibleCols,
		ClickableColumns: []string{"asset_tag"},
		BulkActions: []page.BulkAction{
			{Label: "Check Out", Href: "/vehicles/checkout"},
			{Label: "Check In", Href: "/vehicles/checkin"},
		},
		RowKey: func(v *types.Vehicle) string { return v.AssetTag },
	}
}

// BatteryPacksProps is the battery packs page over rows. It offers no bulk
// actions.
func BatteryPacksProps(rows []*types.BatteryPack) page.Props[*types.BatteryPack] {
	return page.Props[*types.BatteryPack]{
		Title:            "Battery Packs",
		Header:           "Battery Packs",
		Subtitle:         "Battery packs with their latest charge and health readings.",
		Path:             types.AssetPath(types.BatteryPacksTable),
		Columns:          BatteryPackColumns(),
		Data:             rows,
		Breadcrumbs:      dashboardCrumbs("Battery Packs"),
		VisibleCols:      BatteryPackVisibleCols,
		ClickableColumns: []string{"asset_tag"},
		RowKey:           func(b *types.BatteryPack) string { return b.AssetTag },
	}
}

// displayCategories labels each table in the search box.
var displayCategories = map[string]string{
	types.VehiclesTable:     "Vehicles",
	types.BatteryPacksTable: "Battery Packs",
}

// Suggestions lists every asset tag in the catalog for the search box.
func Suggestions(cat types.Catalog) ([]suggest.Suggestion, error) {
	var out []suggest.Suggestion
	for _, name := range types.StandardTableNames {
		tbl, err := cat.GetTable(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		records, err := tbl.Fetch(nil)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", name, err)
		}
		for _, rec := range records {
			var tag string
			switch r := rec.(type) {
			case *types.Vehicle:
				tag = r.AssetTag
			case *types.BatteryPack:
				tag = r.AssetTag
			default:
				continue
			}
			out = append(out, suggest.Suggestion{
				Title:           tag,
				Category:        name,
				DisplayCategory: displayCategories[name],
			})
		}
	}
	return out, nil
}

// Field is a labelled value of a single asset.
type Field struct {
	Key    string     `json:"key"`
	Header string     `json:"header"`
	Value  grid.Value `json:"value"`
}

// Describe lists every column of an asset record in display order. It
// returns nil for records that are not assets.
func Describe(record any) []Field {
	switch r := record.(type) {
	case *types.Vehicle:
		return describe(r, VehicleColumns())
	case *types.BatteryPack:
		return describe(r, BatteryPackColumns())
	default:
		return nil
	}
}

func describe[R any](r R, cols []grid.Column[R]) []Field {
	out := make([]Field, len(cols))
	for i, c := range cols {
		out[i] = Field{Key: c.Key, Header: c.Header, Value: c.Accessor(r)}
	}
	return out
}
