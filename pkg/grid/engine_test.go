package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicle struct {
	AssetTag    string
	Status      string
	Serial      string
	LastCheckin *string
	Mileage     int
}

func strPtr(s string) *string { return &s }

func vehicleColumns() []Column[vehicle] {
	return []Column[vehicle]{
		{Key: "asset_tag", Header: "Asset Tag", Accessor: func(v vehicle) Value { return String(v.AssetTag) }},
		{Key: "status", Header: "Status", Accessor: func(v vehicle) Value { return String(v.Status) }},
		{Key: "serial", Header: "Serial", Accessor: func(v vehicle) Value { return String(v.Serial) }},
		{Key: "last_checkin", Header: "Last Check-In", Accessor: func(v vehicle) Value { return NullableString(v.LastCheckin) }},
		{Key: "mileage", Header: "Mileage", Accessor: func(v vehicle) Value { return Int(v.Mileage) }},
	}
}

func demoVehicles() []vehicle {
	return []vehicle{
		{AssetTag: "VH-1001", Status: "Available", Serial: "SN-12345", LastCheckin: strPtr("2024-04-10"), Mileage: 1200},
		{AssetTag: "VH-1002", Status: "In Maintenance", Serial: "SN-67890", LastCheckin: strPtr("2024-03-15"), Mileage: 300},
		{AssetTag: "VH-1003", Status: "Checked Out", Serial: "SN-54321", LastCheckin: nil, Mileage: 90000},
	}
}

// numberedVehicles returns n vehicles tagged VH-0000 .. VH-(n-1).
func numberedVehicles(n int) []vehicle {
	out := make([]vehicle, n)
	for i := range out {
		out[i] = vehicle{
			AssetTag: fmt.Sprintf("VH-%04d", i),
			Status:   []string{"Available", "Checked Out", "In Maintenance"}[i%3],
			Serial:   fmt.Sprintf("SN-%d", 1000+i),
			Mileage:  (i * 37) % 11,
		}
	}
	return out
}

func tags(rows []vehicle) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.AssetTag
	}
	return out
}

func viewTags(rows []ViewRow[vehicle]) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Data.AssetTag
	}
	return out
}

func TestSearchEmptyKeepsAllRows(t *testing.T) {
	for _, n := range []int{0, 1, 3, 12, 57} {
		rows := numberedVehicles(n)
		e := New(rows, vehicleColumns(), Options[vehicle]{})
		e.SetSearchText("")
		assert.Len(t, e.FilteredRows(), n)
	}
}

func TestSearchConcreteAssetTag(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{EnableSearch: true})

	e.SetSearchText("vh-1002")

	got := e.FilteredRows()
	require.Len(t, got, 1)
	assert.Equal(t, "VH-1002", got[0].AssetTag)
}

func TestSearchSoundAndComplete(t *testing.T) {
	rows := numberedVehicles(40)
	needles := []string{"vh-00", "available", "MAINT", "sn-102", "7", "zzz", "checked out"}

	for _, needle := range needles {
		t.Run(needle, func(t *testing.T) {
			e := New(rows, vehicleColumns(), Options[vehicle]{})
			e.SetSearchText(needle)

			kept := make(map[string]bool)
			for _, r := range e.FilteredRows() {
				kept[r.AssetTag] = true
			}
			for _, r := range rows {
				match := false
				for _, c := range vehicleColumns() {
					v := c.Accessor(r)
					if !v.IsNull() && ContainsFold(v.Text(), needle) {
						match = true
					}
				}
				assert.Equal(t, match, kept[r.AssetTag], "row %s", r.AssetTag)
			}
		})
	}
}

func TestSearchMatchesHiddenColumns(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{VisibleCols: []string{"asset_tag"}})

	e.SetSearchText("sn-543")

	assert.Equal(t, []string{"VH-1003"}, tags(e.FilteredRows()))
}

func TestSearchNullNeverMatches(t *testing.T) {
	e := New(demoVehicles(), []Column[vehicle]{
		{Key: "last_checkin", Accessor: func(v vehicle) Value { return NullableString(v.LastCheckin) }},
	}, Options[vehicle]{})

	e.SetSearchText("2024")

	assert.Equal(t, []string{"VH-1001", "VH-1002"}, tags(e.FilteredRows()))
}

func TestSearchResetsPage(t *testing.T) {
	e := New(numberedVehicles(30), vehicleColumns(), Options[vehicle]{PageSize: 5})
	e.SetPage(4)
	require.Equal(t, 4, e.Pagination().PageIndex)

	e.SetSearchText("vh-00")

	assert.Equal(t, 0, e.Pagination().PageIndex)
}

func TestSortCycle(t *testing.T) {
	rows := numberedVehicles(25)
	e := New(rows, vehicleColumns(), Options[vehicle]{PageSize: 50})
	original := tags(e.FilteredRows())

	e.SetSort("mileage")
	assert.Equal(t, Ascending, e.SortDirection("mileage"))
	asc := e.FilteredRows()
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Mileage, asc[i].Mileage)
	}

	e.SetSort("mileage")
	assert.Equal(t, Descending, e.SortDirection("mileage"))
	desc := e.FilteredRows()
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Mileage, desc[i].Mileage)
	}

	e.SetSort("mileage")
	assert.Equal(t, None, e.SortDirection("mileage"))
	assert.Empty(t, e.Sorting())
	assert.Equal(t, original, tags(e.FilteredRows()))
}

func TestSortIsStable(t *testing.T) {
	rows := numberedVehicles(30)
	e := New(rows, vehicleColumns(), Options[vehicle]{})

	e.SetSort("status")

	// Ties on status keep ascending tag order.
	got := e.FilteredRows()
	for i := 1; i < len(got); i++ {
		if got[i-1].Status == got[i].Status {
			assert.Less(t, got[i-1].AssetTag, got[i].AssetTag)
		}
	}
}

func TestSortNewColumnClearsPrevious(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{})

	e.SetSort("status")
	e.SetSort("status")
	e.SetSort("serial")

	assert.Equal(t, []SortEntry{{Key: "serial", Direction: Ascending}}, e.Sorting())
	assert.Equal(t, None, e.SortDirection("status"))
	assert.Equal(t, []string{"VH-1001", "VH-1003", "VH-1002"}, tags(e.FilteredRows()))
}

func TestSortNullsLast(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{})

	e.SetSort("last_checkin")
	assert.Equal(t, []string{"VH-1002", "VH-1001", "VH-1003"}, tags(e.FilteredRows()))

	e.SetSort("last_checkin")
	assert.Equal(t, []string{"VH-1001", "VH-1002", "VH-1003"}, tags(e.FilteredRows()))
}

func TestSortNumbersNumerically(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{})

	e.SetSort("mileage")

	// Lexical order would put 1200 before 300.
	assert.Equal(t, []string{"VH-1002", "VH-1001", "VH-1003"}, tags(e.FilteredRows()))
}

func TestSortUnknownKeyIgnored(t *testing.T) {
	var changes int
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{OnChange: func(Change) { changes++ }})

	e.SetSort("nope")

	assert.Empty(t, e.Sorting())
	assert.Zero(t, changes)
}

func TestPageCountAndLastPage(t *testing.T) {
	for _, p := range PageSizes {
		for _, n := range []int{0, 1, 4, 5, 9, 10, 11, 20, 49, 50, 51, 103} {
			t.Run(fmt.Sprintf("n=%d/p=%d", n, p), func(t *testing.T) {
				e := New(numberedVehicles(n), vehicleColumns(), Options[vehicle]{PageSize: p})

				want := (n + p - 1) / p
				assert.Equal(t, want, e.PageCount())
				if n == 0 {
					assert.Empty(t, e.VisibleRows())
					return
				}

				e.LastPage()
				last := n % p
				if last == 0 {
					last = p
				}
				assert.Len(t, e.VisibleRows(), last)
			})
		}
	}
}

func TestPageBoundariesAreNoOps(t *testing.T) {
	e := New(numberedVehicles(12), vehicleColumns(), Options[vehicle]{})

	e.PreviousPage()
	assert.Equal(t, 0, e.Pagination().PageIndex)

	e.NextPage()
	e.NextPage()
	e.NextPage()
	assert.Equal(t, 1, e.Pagination().PageIndex)
	assert.False(t, e.CanNextPage())
	assert.True(t, e.CanPreviousPage())
	assert.Equal(t, []string{"VH-0010", "VH-0011"}, viewTags(e.VisibleRows()))
}

func TestSetPageOutOfRangeIgnored(t *testing.T) {
	e := New(numberedVehicles(12), vehicleColumns(), Options[vehicle]{})

	e.SetPage(5)
	assert.Equal(t, 0, e.Pagination().PageIndex)
	e.SetPage(-1)
	assert.Equal(t, 0, e.Pagination().PageIndex)
}

func TestSetPageSize(t *testing.T) {
	e := New(numberedVehicles(60), vehicleColumns(), Options[vehicle]{})
	e.SetPage(2) // rows 20..29

	e.SetPageSize(50)
	assert.Equal(t, Pagination{PageIndex: 0, PageSize: 50}, e.Pagination())

	e.SetPageSize(5)
	assert.Equal(t, 0, e.Pagination().PageIndex)

	e.SetPage(7) // rows 35..39
	e.SetPageSize(20)
	assert.Equal(t, 1, e.Pagination().PageIndex)
	assert.Equal(t, "VH-0020", e.VisibleRows()[0].Data.AssetTag)

	e.SetPageSize(7)
	assert.Equal(t, 20, e.Pagination().PageSize, "unsupported size ignored")
}

func TestPageInvariantAfterDataShrinks(t *testing.T) {
	e := New(numberedVehicles(30), vehicleColumns(), Options[vehicle]{})
	e.LastPage()

	e.SetRows(numberedVehicles(4))

	assert.Equal(t, 0, e.Pagination().PageIndex)
	assert.Len(t, e.VisibleRows(), 4)
}

func TestToggleSelectAllIsPageLocal(t *testing.T) {
	e := New(numberedVehicles(12), vehicleColumns(), Options[vehicle]{EnableMultiSelect: true, PageSize: 10})

	e.ToggleSelectAll()

	assert.Len(t, e.SelectedIDs(), 10)
	for _, r := range e.VisibleRows() {
		assert.True(t, e.IsSelected(r.ID))
	}
	assert.False(t, e.IsSelected("10"))
	assert.False(t, e.IsSelected("11"))
	assert.Equal(t, Checked, e.PageSelection())

	e.NextPage()
	assert.Equal(t, Unchecked, e.PageSelection())
	e.ToggleSelectAll()
	assert.Len(t, e.SelectedIDs(), 12)

	e.ToggleSelectAll()
	assert.Len(t, e.SelectedIDs(), 10, "deselecting page 2 leaves page 1 selected")
}

func TestToggleSelectAllDeselectsWhenPageFullySelected(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{})

	e.ToggleRowSelection("1")
	assert.Equal(t, Indeterminate, e.PageSelection())

	e.ToggleSelectAll()
	assert.Equal(t, []string{"0", "1", "2"}, e.SelectedIDs())

	e.ToggleSelectAll()
	assert.Empty(t, e.SelectedIDs())
	assert.Equal(t, Unchecked, e.PageSelection())
}

func TestSelectionSurvivesDataChange(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{})
	e.ToggleRowSelection("2")

	e.SetRows(demoVehicles()[:2])

	assert.Equal(t, []string{"2"}, e.SelectedIDs())
	e.ClearSelection()
	assert.Empty(t, e.SelectedIDs())
}

func TestToggleRowSelectionUnknownIgnored(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{})

	e.ToggleRowSelection("99")

	assert.Empty(t, e.SelectedIDs())
}

func TestRowKey(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{
		RowKey: func(v vehicle) string { return v.AssetTag },
	})
	e.SetSort("asset_tag")
	e.SetSort("asset_tag")

	e.ToggleRowSelection("VH-1001")

	assert.Equal(t, "VH-1003", e.VisibleRows()[0].ID)
	assert.Equal(t, []vehicle{demoVehicles()[0]}, e.SelectedRows())
}

func TestColumnVisibilityProjection(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{EnableColumnToggle: true})

	e.SetColumnVisibility("serial", false)

	for _, c := range e.VisibleColumns() {
		assert.NotEqual(t, "serial", c.Key)
	}
	row := e.VisibleRows()[0]
	for _, cell := range row.Cells {
		assert.NotEqual(t, "serial", cell.Key)
	}
	assert.Equal(t, "SN-12345", row.Data.Serial)
	assert.Len(t, e.AllColumns(), 5)
}

func TestVisibleColsSeedsVisibility(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{VisibleCols: []string{"status", "asset_tag"}})

	var keys []string
	for _, c := range e.VisibleColumns() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"asset_tag", "status"}, keys)
	assert.False(t, e.IsColumnVisible("mileage"))

	e.SetAllColumnsVisible(true)
	assert.Len(t, e.VisibleColumns(), 5)
	e.ToggleColumnVisibility("mileage")
	assert.False(t, e.IsColumnVisible("mileage"))
	e.SetColumnVisibility("nope", true)
	assert.NotContains(t, e.State().ColumnVisibility, "nope")
}

func TestClickableCells(t *testing.T) {
	e := New(demoVehicles(), vehicleColumns(), Options[vehicle]{ClickableColumns: []string{"asset_tag"}})

	cells := e.VisibleRows()[0].Cells
	assert.True(t, cells[0].Clickable)
	assert.False(t, cells[1].Clickable)
	assert.Equal(t, "VH-1001", cells[0].Text)
}

func TestOnChangeReportsState(t *testing.T) {
	var got []ChangeKind
	var last State
	e := New(numberedVehicles(12), vehicleColumns(), Options[vehicle]{
		OnChange: func(c Change) {
			got = append(got, c.Kind)
			last = c.State
		},
	})

	e.SetSearchText("vh")
	e.SetSort("serial")
	e.NextPage()
	e.ToggleRowSelection("11")
	e.SetColumnVisibility("serial", false)
	e.SetSearchText("vh") // unchanged, no event

	assert.Equal(t, []ChangeKind{ChangeSearch, ChangeSort, ChangePagination, ChangeSelection, ChangeVisibility}, got)
	assert.Equal(t, "vh", last.SearchText)
	assert.Equal(t, Pagination{PageIndex: 1, PageSize: 10}, last.Pagination)
	assert.Equal(t, []string{"11"}, last.SelectedRowIDs)
	assert.False(t, last.ColumnVisibility["serial"])
}
