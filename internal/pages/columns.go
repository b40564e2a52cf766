package pages

import (
	"github.com/mesh-intelligence/assetdesk/pkg/grid"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// VehicleColumns lists every vehicle column in display order.
func VehicleColumns() []grid.Column[*types.Vehicle] {
	str := func(key, header string, get func(*types.Vehicle) string) grid.Column[*types.Vehicle] {
		return grid.Column[*types.Vehicle]{Key: key, Header: header, Accessor: func(v *types.Vehicle) grid.Value {
			return grid.String(get(v))
		}}
	}
	opt := func(key, header string, get func(*types.Vehicle) *string) grid.Column[*types.Vehicle] {
		return grid.Column[*types.Vehicle]{Key: key, Header: header, Accessor: func(v *types.Vehicle) grid.Value {
			return grid.NullableString(get(v))
		}}
	}
	return []grid.Column[*types.Vehicle]{
		str("asset_tag", "Asset Tag", func(v *types.Vehicle) string { return v.AssetTag }),
		str("category_name", "Category", func(v *types.Vehicle) string { return v.CategoryName }),
		str("company", "Company", func(v *types.Vehicle) string { return v.Company }),
		str("model", "Model", func(v *types.Vehicle) string { return v.Model }),
		str("serial", "Serial", func(v *types.Vehicle) string { return v.Serial }),
		str("status_label", "Status", func(v *types.Vehicle) string { return v.StatusLabel }),
		opt("vehicle_registration_number", "Registration Number", func(v *types.Vehicle) *string { return v.VehicleRegistrationNumber }),
		opt("last_checkin", "Last Check-In", func(v *types.Vehicle) *string { return v.LastCheckin }),
		opt("last_checkout", "Last Check-Out", func(v *types.Vehicle) *string { return v.LastCheckout }),
		str("created_at", "Created At", func(v *types.Vehicle) string { return v.CreatedAt }),
		str("updated_at", "Updated At", func(v *types.Vehicle) string { return v.UpdatedAt }),
	}
}

// VehicleVisibleCols are the vehicle columns shown until the user toggles
// others on.
var VehicleVisibleCols = []string{
	"asset_tag",
	"category_name",
	"company",
	"model",
	"serial",
	"status_label",
}

// BatteryPackColumns lists every battery pack column in display order.
func BatteryPackColumns() []grid.Column[*types.BatteryPack] {
	str := func(key, header string, get func(*types.BatteryPack) string) grid.Column[*types.BatteryPack] {
		return grid.Column[*types.BatteryPack]{Key: key, Header: header, Accessor: func(b *types.BatteryPack) grid.Value {
			return grid.String(get(b))
		}}
	}
	num := func(key, header string, get func(*types.BatteryPack) float64) grid.Column[*types.BatteryPack] {
		return grid.Column[*types.BatteryPack]{Key: key, Header: header, Accessor: func(b *types.BatteryPack) grid.Value {
			return grid.Number(get(b))
		}}
	}
	return []grid.Column[*types.BatteryPack]{
		str("asset_tag", "Asset Tag", func(b *types.BatteryPack) string { return b.AssetTag }),
		str("status_label", "Status", func(b *types.BatteryPack) string { return b.StatusLabel }),
		str("model", "Model", func(b *types.BatteryPack) string { return b.Model }),
		str("company_name", "Company", func(b *types.BatteryPack) string { return b.CompanyName }),
		num("warranty_duration", "Warranty (months)", func(b *types.BatteryPack) float64 { return float64(b.WarrantyMonths) }),
		str("location", "Location", func(b *types.BatteryPack) string { return b.Location }),
		str("manufacturer", "Manufacturer", func(b *types.BatteryPack) string { return b.Manufacturer }),
		str("battery_cell_chemistry", "Cell Chemistry", func(b *types.BatteryPack) string { return b.CellChemistry }),
		str("battery_cell_type", "Cell Type", func(b *types.BatteryPack) string { return b.CellType }),
		num("battery_pack_nominal_voltage", "Nominal Voltage", func(b *types.BatteryPack) float64 { return b.NominalVoltage }),
		num("battery_pack_nominal_charge_capacity", "Capacity", func(b *types.BatteryPack) float64 { return b.NominalChargeCapacity }),
		str("bms_type", "BMS Type", func(b *types.BatteryPack) string { return b.BMSType }),
		str("battery_pack_state", "State", func(b *types.BatteryPack) string { return b.PackState }),
		num("SoC", "SoC", func(b *types.BatteryPack) float64 { return b.SoC }),
		num("SoH", "SoH", func(b *types.BatteryPack) float64 { return b.SoH }),
		str("created_at", "Created At", func(b *types.BatteryPack) string { return b.CreatedAt }),
		str("updated_at", "Updated At", func(b *types.BatteryPack) string { return b.UpdatedAt }),
	}
}

// BatteryPackVisibleCols are the battery pack columns shown by default.
var BatteryPackVisibleCols = []string{
	"asset_tag",
	"status_label",
	"model",
	"company_name",
	"location",
	"SoC",
	"SoH",
}
