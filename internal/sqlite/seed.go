// This file seeds the demo catalog on first startup.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

func strPtr(s string) *string { return &s }

// demoVehicles is the fleet a fresh data directory starts with.
func demoVehicles() []types.Vehicle {
	return []types.Vehicle{
		{
			AssetTag:                  "VH-1001",
			CategoryName:              "SUV",
			Company:                   "Toyota",
			Model:                     "Highlander",
			Serial:                    "SN-12345",
			StatusLabel:               types.StatusAvailable,
			VehicleRegistrationNumber: strPtr("ABC-123"),
			LastCheckin:               strPtr("2024-04-10"),
			LastCheckout:              strPtr("2024-04-01"),
			CreatedAt:                 "2023-01-15",
			UpdatedAt:                 "2024-04-10",
		},
		{
			AssetTag:                  "VH-1002",
			CategoryName:              "Truck",
			Company:                   "Ford",
			Model:                     "F-150",
			Serial:                    "SN-67890",
			StatusLabel:               types.StatusInMaintenance,
			VehicleRegistrationNumber: strPtr("XYZ-789"),
			LastCheckin:               strPtr("2024-03-28"),
			LastCheckout:              strPtr("2024-03-20"),
			CreatedAt:                 "2022-11-03",
			UpdatedAt:                 "2024-03-28",
		},
		{
			AssetTag:                  "VH-1003",
			CategoryName:              "Sedan",
			Company:                   "Honda",
			Model:                     "Civic",
			Serial:                    "SN-54321",
			StatusLabel:               types.StatusCheckedOut,
			VehicleRegistrationNumber: strPtr("LMN-456"),
			LastCheckout:              strPtr("2024-04-12"),
			CreatedAt:                 "2023-06-21",
			UpdatedAt:                 "2024-04-12",
		},
	}
}

// demoBatteryPacks is the battery inventory a fresh data directory starts with.
func demoBatteryPacks() []types.BatteryPack {
	return []types.BatteryPack{
		{
			AssetTag:              "BP-202",
			StatusLabel:           types.StatusAvailable,
			Model:                 "PowerCell 48",
			CompanyName:           "VoltWorks",
			WarrantyMonths:        36,
			Location:              "Depot A",
			Manufacturer:          "VoltWorks",
			CellChemistry:         "LFP",
			CellType:              "Prismatic",
			NominalVoltage:        48,
			NominalChargeCapacity: 100,
			BMSType:               "Centralized",
			PackState:             "Idle",
			SoC:                   82,
			SoH:                   97,
			CreatedAt:             "2023-09-01",
			UpdatedAt:             "2024-04-02",
		},
		{
			AssetTag:              "BP-203",
			StatusLabel:           types.StatusInMaintenance,
			Model:                 "PowerCell 72",
			CompanyName:           "VoltWorks",
			WarrantyMonths:        24,
			Location:              "Depot B",
			Manufacturer:          "Cellex",
			CellChemistry:         "NMC",
			CellType:              "Cylindrical",
			NominalVoltage:        72,
			NominalChargeCapacity: 150,
			BMSType:               "Modular",
			PackState:             "Charging",
			SoC:                   41,
			SoH:                   88,
			CreatedAt:             "2023-10-14",
			UpdatedAt:             "2024-03-30",
		},
	}
}

// seedDemoCatalog inserts the demo catalog and writes it to the JSONL files.
// Assets that already exist are left alone, so seeding twice is harmless.
func seedDemoCatalog(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, v := range demoVehicles() {
		if exists, err := rowExists(tx, types.VehiclesTable, v.AssetTag); err != nil {
			return err
		} else if exists {
			continue
		}
		v.ID = newRecordID()
		if err := upsertVehicle(tx, &v); err != nil {
			return err
		}
	}
	for _, b := range demoBatteryPacks() {
		if exists, err := rowExists(tx, types.BatteryPacksTable, b.AssetTag); err != nil {
			return err
		} else if exists {
			continue
		}
		b.ID = newRecordID()
		if err := upsertBatteryPack(tx, &b); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	if err := persistVehicles(db, dataDir); err != nil {
		return err
	}
	return persistBatteryPacks(db, dataDir)
}

func rowExists(tx *sql.Tx, tableName, tag string) (bool, error) {
	var n int
	err := tx.QueryRow("SELECT COUNT(*) FROM "+tableName+" WHERE asset_tag = ?", tag).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking %s %s: %w", tableName, tag, err)
	}
	return n > 0, nil
}
