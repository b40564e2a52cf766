// This file loads the JSONL files into SQLite on Attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// loadAllJSONL reads each JSONL file from dataDir and upserts its records.
// Loading is transactional: all succeed or the database stays empty.
// Malformed lines and records without an asset tag are skipped. Unknown
// fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if err := loadVehicles(tx, dataDir); err != nil {
		return err
	}
	if err := loadBatteryPacks(tx, dataDir); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

func loadVehicles(tx *sql.Tx, dataDir string) error {
	records, err := readJSONL(jsonlPath(dataDir, types.VehiclesTable))
	if err != nil {
		return err
	}
	for _, rec := range records {
		var v types.Vehicle
		if err := json.Unmarshal(rec, &v); err != nil || v.AssetTag == "" {
			continue
		}
		if v.ID == "" {
			v.ID = newRecordID()
		}
		if err := upsertVehicle(tx, &v); err != nil {
			return err
		}
	}
	return nil
}

func loadBatteryPacks(tx *sql.Tx, dataDir string) error {
	records, err := readJSONL(jsonlPath(dataDir, types.BatteryPacksTable))
	if err != nil {
		return err
	}
	for _, rec := range records {
		var b types.BatteryPack
		if err := json.Unmarshal(rec, &b); err != nil || b.AssetTag == "" {
			continue
		}
		if b.ID == "" {
			b.ID = newRecordID()
		}
		if err := upsertBatteryPack(tx, &b); err != nil {
			return err
		}
	}
	return nil
}
