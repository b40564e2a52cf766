package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for the catalog tables.
const (
	createVehicles = `CREATE TABLE vehicles (
    asset_tag TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    category_name TEXT NOT NULL DEFAULT '',
    company TEXT NOT NULL,
    model TEXT NOT NULL,
    serial TEXT NOT NULL DEFAULT '',
    status_label TEXT NOT NULL,
    vehicle_registration_number TEXT,
    last_checkin TEXT,
    last_checkout TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createBatteryPacks = `CREATE TABLE battery_packs (
    asset_tag TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    status_label TEXT NOT NULL,
    model TEXT NOT NULL DEFAULT '',
    company_name TEXT NOT NULL DEFAULT '',
    warranty_months INTEGER NOT NULL DEFAULT 0,
    location TEXT NOT NULL DEFAULT '',
    manufacturer TEXT NOT NULL DEFAULT '',
    cell_chemistry TEXT NOT NULL DEFAULT '',
    cell_type TEXT NOT NULL DEFAULT '',
    nominal_voltage REAL NOT NULL DEFAULT 0,
    nominal_charge_capacity REAL NOT NULL,
    bms_type TEXT NOT NULL DEFAULT '',
    pack_state TEXT NOT NULL DEFAULT '',
    soc REAL NOT NULL DEFAULT 0,
    soh REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for the filters Fetch supports.
const (
	idxVehiclesStatus      = `CREATE INDEX idx_vehicles_status ON vehicles(status_label);`
	idxVehiclesCompany     = `CREATE INDEX idx_vehicles_company ON vehicles(company);`
	idxBatteryPacksStatus  = `CREATE INDEX idx_battery_packs_status ON battery_packs(status_label);`
	idxBatteryPacksCompany = `CREATE INDEX idx_battery_packs_company ON battery_packs(company_name);`
)

var schemaDDL = []string{
	createVehicles,
	createBatteryPacks,
}

var indexDDL = []string{
	idxVehiclesStatus,
	idxVehiclesCompany,
	idxBatteryPacksStatus,
	idxBatteryPacksCompany,
}

// createSchema executes every table and index statement.
func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
