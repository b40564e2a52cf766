package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

const batteryPackSelect = `SELECT asset_tag, id, status_label, model, company_name, warranty_months,
    location, manufacturer, cell_chemistry, cell_type, nominal_voltage, nominal_charge_capacity,
    bms_type, pack_state, soc, soh, created_at, updated_at FROM battery_packs`

const batteryPackUpsert = `INSERT INTO battery_packs (asset_tag, id, status_label, model, company_name,
    warranty_months, location, manufacturer, cell_chemistry, cell_type, nominal_voltage,
    nominal_charge_capacity, bms_type, pack_state, soc, soh, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(asset_tag) DO UPDATE SET
    id = excluded.id,
    status_label = excluded.status_label,
    model = excluded.model,
    company_name = excluded.company_name,
    warranty_months = excluded.warranty_months,
    location = excluded.location,
    manufacturer = excluded.manufacturer,
    cell_chemistry = excluded.cell_chemistry,
    cell_type = excluded.cell_type,
    nominal_voltage = excluded.nominal_voltage,
    nominal_charge_capacity = excluded.nominal_charge_capacity,
    bms_type = excluded.bms_type,
    pack_state = excluded.pack_state,
    soc = excluded.soc,
    soh = excluded.soh,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at`

func upsertBatteryPack(ex execer, b *types.BatteryPack) error {
	_, err := ex.Exec(batteryPackUpsert,
		b.AssetTag, b.ID, b.StatusLabel, b.Model, b.CompanyName, b.WarrantyMonths,
		b.Location, b.Manufacturer, b.CellChemistry, b.CellType, b.NominalVoltage,
		b.NominalChargeCapacity, b.BMSType, b.PackState, b.SoC, b.SoH, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting battery pack %s: %w", b.AssetTag, err)
	}
	return nil
}

func scanBatteryPack(s rowScanner) (*types.BatteryPack, error) {
	var b types.BatteryPack
	err := s.Scan(&b.AssetTag, &b.ID, &b.StatusLabel, &b.Model, &b.CompanyName, &b.WarrantyMonths,
		&b.Location, &b.Manufacturer, &b.CellChemistry, &b.CellType, &b.NominalVoltage,
		&b.NominalChargeCapacity, &b.BMSType, &b.PackState, &b.SoC, &b.SoH, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (t *table) getBatteryPack(tag string) (any, error) {
	b, err := scanBatteryPack(t.backend.db.QueryRow(batteryPackSelect+" WHERE asset_tag = ?", tag))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting battery pack %s: %w", tag, err)
	}
	return b, nil
}

func (t *table) setBatteryPack(tag string, data any) (string, error) {
	var b *types.BatteryPack
	switch d := data.(type) {
	case *types.BatteryPack:
		b = d
	case types.BatteryPack:
		b = &d
	default:
		return "", types.ErrInvalidData
	}
	if tag != "" {
		b.AssetTag = tag
	}
	b.ApplyDefaults()
	if err := b.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}

	var id, createdAt string
	err := t.backend.db.QueryRow("SELECT id, created_at FROM battery_packs WHERE asset_tag = ?", b.AssetTag).
		Scan(&id, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if b.ID == "" {
			b.ID = newRecordID()
		}
		if b.CreatedAt == "" {
			b.CreatedAt = today()
		}
	case err != nil:
		return "", fmt.Errorf("looking up battery pack %s: %w", b.AssetTag, err)
	default:
		b.ID = id
		if b.CreatedAt == "" {
			b.CreatedAt = createdAt
		}
	}
	b.UpdatedAt = today()

	if err := upsertBatteryPack(t.backend.db, b); err != nil {
		return "", err
	}
	if err := t.persist(); err != nil {
		return "", err
	}
	return b.AssetTag, nil
}

func (t *table) fetchBatteryPacks(filter map[string]any) ([]any, error) {
	packs, err := queryBatteryPacks(t.backend.db, filter)
	if err != nil {
		return nil, err
	}
	results := make([]any, len(packs))
	for i, b := range packs {
		results[i] = b
	}
	return results, nil
}

func queryBatteryPacks(db *sql.DB, filter map[string]any) ([]*types.BatteryPack, error) {
	clause, args, err := whereClause(filter, "company_name")
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(batteryPackSelect+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching battery packs: %w", err)
	}
	defer rows.Close()

	var out []*types.BatteryPack
	for rows.Next() {
		b, err := scanBatteryPack(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battery pack: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// persistBatteryPacks writes every battery pack to battery_packs.jsonl in
// catalog order.
func persistBatteryPacks(db *sql.DB, dataDir string) error {
	packs, err := queryBatteryPacks(db, nil)
	if err != nil {
		return err
	}
	records, err := marshalRecords(packs)
	if err != nil {
		return fmt.Errorf("marshaling battery packs: %w", err)
	}
	return writeJSONL(jsonlPath(dataDir, types.BatteryPacksTable), records)
}
