package types

// Standard table names for Catalog.GetTable.
const (
	VehiclesTable     = "vehicles"
	BatteryPacksTable = "battery_packs"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	VehiclesTable,
	BatteryPacksTable,
}

// TableForAsset maps the asset segment of a page path ("vehicles",
// "battery-packs") to its table name.
func TableForAsset(asset string) (string, bool) {
	switch asset {
	case VehiclesTable:
		return VehiclesTable, true
	case "battery-packs", "battery-pack", BatteryPacksTable:
		return BatteryPacksTable, true
	default:
		return "", false
	}
}

// AssetPath returns the page path of a table ("/vehicles", "/battery-packs").
func AssetPath(table string) string {
	switch table {
	case BatteryPacksTable:
		return "/battery-packs"
	default:
		return "/" + table
	}
}
