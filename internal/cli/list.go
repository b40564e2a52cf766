package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/pkg/grid"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// listFlags are the table operations list applies before rendering, in
// field order.
type listFlags struct {
	search    string
	columns   string
	sort      []string
	pageSize  int
	page      int
	selectIDs []string
	selectAll bool
	status    string
	company   string
}

func (a *app) newListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list <asset>",
		Short: "Show an asset list page",
		Long: `List renders one page of an asset table. asset is vehicles or battery-packs.

Flags are applied in this order: search, columns, sort, page size, page,
selection. Each --sort names a column and advances it one step through
none, ascending and descending, so repeating a column sorts descending.

Example:
  assetdesk list vehicles
  assetdesk list vehicles --search toyota
  assetdesk list battery-packs --sort SoC --sort SoC --columns asset_tag,SoC
  assetdesk list vehicles --page-size 5 --page 2 --select-all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.search, "search", "", "case-insensitive search across visible columns")
	fl.StringVar(&f.columns, "columns", "", `visible columns: "all" or a comma-separated list of keys`)
	fl.StringArrayVar(&f.sort, "sort", nil, "advance the sort of a column (repeatable)")
	fl.IntVar(&f.pageSize, "page-size", 0, "rows per page: 5, 10, 20 or 50 (default from config)")
	fl.IntVar(&f.page, "page", 1, "page number, starting at 1")
	fl.StringSliceVar(&f.selectIDs, "select", nil, "asset tags to select")
	fl.BoolVar(&f.selectAll, "select-all", false, "toggle selection of every row on the page")
	fl.StringVar(&f.status, "status", "", "only load assets with this status")
	fl.StringVar(&f.company, "company", "", "only load assets from this company")
	return cmd
}

func (f listFlags) filter() map[string]any {
	filter := map[string]any{}
	if f.status != "" {
		filter["status_label"] = f.status
	}
	if f.company != "" {
		filter["company"] = f.company
	}
	return filter
}

func (a *app) runList(cmd *cobra.Command, asset string, f listFlags) error {
	if f.pageSize != 0 {
		cfg := types.Config{Backend: types.BackendSQLite, PageSize: f.pageSize}
		if err := cfg.Validate(); err != nil {
			return userError(fmt.Errorf("--page-size %d: %w", f.pageSize, err))
		}
	}

	cat, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer cat.Detach()

	var changes []grid.Change
	l, err := pages.Open(cat, asset, pages.Options{
		Filter:   f.filter(),
		PageSize: a.settings.PageSize,
		OnChange: func(c grid.Change) { changes = append(changes, c) },
	})
	if err != nil {
		return classify(err)
	}

	view := l.Build(a.loadSession(cmd.Context()))
	if err := resolveView(view); err != nil {
		return err
	}

	if err := applyListFlags(l.Table(), f); err != nil {
		return err
	}
	for _, id := range f.selectIDs {
		if !l.Table().IsSelected(id) {
			a.logger.Warn("ignoring unknown asset tag", "tag", id)
		}
	}
	for _, c := range changes {
		a.logger.Debug("table state changed", "kind", c.Kind.String())
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), newListingDoc(l, view.User))
	}
	return renderListing(cmd.OutOrStdout(), l, view.User)
}

var errUnknownColumn = errors.New("unknown column")

// applyListFlags drives the table controller the way a user would.
func applyListFlags(t grid.Controller, f listFlags) error {
	if f.search != "" {
		t.SetSearchText(f.search)
	}

	switch cols := strings.TrimSpace(f.columns); cols {
	case "":
	case "all":
		t.SetAllColumnsVisible(true)
	default:
		keys := strings.Split(cols, ",")
		for i, k := range keys {
			keys[i] = strings.TrimSpace(k)
			if !t.HasColumn(keys[i]) {
				return userError(fmt.Errorf("%w %q", errUnknownColumn, keys[i]))
			}
		}
		t.SetAllColumnsVisible(false)
		for _, k := range keys {
			t.SetColumnVisibility(k, true)
		}
	}

	for _, key := range f.sort {
		if !t.HasColumn(key) {
			return userError(fmt.Errorf("%w %q", errUnknownColumn, key))
		}
		t.SetSort(key)
	}

	if f.pageSize != 0 {
		t.SetPageSize(f.pageSize)
	}
	if f.page < 1 || (f.page > 1 && f.page > t.PageCount()) {
		return userError(fmt.Errorf("page %d out of range (1-%d)", f.page, max(t.PageCount(), 1)))
	}
	t.SetPage(f.page - 1)

	for _, id := range f.selectIDs {
		if !t.IsSelected(id) {
			t.ToggleRowSelection(id)
		}
	}
	if f.selectAll {
		t.ToggleSelectAll()
	}
	return nil
}
