package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

const vehicleSelect = `SELECT asset_tag, id, category_name, company, model, serial, status_label,
    vehicle_registration_number, last_checkin, last_checkout, created_at, updated_at FROM vehicles`

const vehicleUpsert = `INSERT INTO vehicles (asset_tag, id, category_name, company, model, serial,
    status_label, vehicle_registration_number, last_checkin, last_checkout, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(asset_tag) DO UPDATE SET
    id = excluded.id,
    category_name = excluded.category_name,
    company = excluded.company,
    model = excluded.model,
    serial = excluded.serial,
    status_label = excluded.status_label,
    vehicle_registration_number = excluded.vehicle_registration_number,
    last_checkin = excluded.last_checkin,
    last_checkout = excluded.last_checkout,
    created_at = excluded.created_at,
    updated_at = excluded.updated_at`

func upsertVehicle(ex execer, v *types.Vehicle) error {
	_, err := ex.Exec(vehicleUpsert,
		v.AssetTag, v.ID, v.CategoryName, v.Company, v.Model, v.Serial, v.StatusLabel,
		nullable(v.VehicleRegistrationNumber), nullable(v.LastCheckin), nullable(v.LastCheckout),
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting vehicle %s: %w", v.AssetTag, err)
	}
	return nil
}

func scanVehicle(s rowScanner) (*types.Vehicle, error) {
	var v types.Vehicle
	var reg, checkin, checkout sql.NullString
	err := s.Scan(&v.AssetTag, &v.ID, &v.CategoryName, &v.Company, &v.Model, &v.Serial,
		&v.StatusLabel, &reg, &checkin, &checkout, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.VehicleRegistrationNumber = fromNull(reg)
	v.LastCheckin = fromNull(checkin)
	v.LastCheckout = fromNull(checkout)
	return &v, nil
}

func (t *table) getVehicle(tag string) (any, error) {
	v, err := scanVehicle(t.backend.db.QueryRow(vehicleSelect+" WHERE asset_tag = ?", tag))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting vehicle %s: %w", tag, err)
	}
	return v, nil
}

func (t *table) setVehicle(tag string, data any) (string, error) {
	var v *types.Vehicle
	switch d := data.(type) {
	case *types.Vehicle:
		v = d
	case types.Vehicle:
		v = &d
	default:
		return "", types.ErrInvalidData
	}
	if tag != "" {
		v.AssetTag = tag
	}
	v.ApplyDefaults()
	if err := v.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}

	var id, createdAt string
	err := t.backend.db.QueryRow("SELECT id, created_at FROM vehicles WHERE asset_tag = ?", v.AssetTag).
		Scan(&id, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if v.ID == "" {
			v.ID = newRecordID()
		}
		if v.CreatedAt == "" {
			v.CreatedAt = today()
		}
	case err != nil:
		return "", fmt.Errorf("looking up vehicle %s: %w", v.AssetTag, err)
	default:
		v.ID = id
		if v.CreatedAt == "" {
			v.CreatedAt = createdAt
		}
	}
	v.UpdatedAt = today()

	if err := upsertVehicle(t.backend.db, v); err != nil {
		return "", err
	}
	if err := t.persist(); err != nil {
		return "", err
	}
	return v.AssetTag, nil
}

func (t *table) fetchVehicles(filter map[string]any) ([]any, error) {
	vehicles, err := queryVehicles(t.backend.db, filter)
	if err != nil {
		return nil, err
	}
	results := make([]any, len(vehicles))
	for i, v := range vehicles {
		results[i] = v
	}
	return results, nil
}

func queryVehicles(db *sql.DB, filter map[string]any) ([]*types.Vehicle, error) {
	clause, args, err := whereClause(filter, "company")
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(vehicleSelect+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching vehicles: %w", err)
	}
	defer rows.Close()

	var out []*types.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// persistVehicles writes every vehicle to vehicles.jsonl in catalog order.
func persistVehicles(db *sql.DB, dataDir string) error {
	vehicles, err := queryVehicles(db, nil)
	if err != nil {
		return err
	}
	records, err := marshalRecords(vehicles)
	if err != nil {
		return fmt.Errorf("marshaling vehicles: %w", err)
	}
	return writeJSONL(jsonlPath(dataDir, types.VehiclesTable), records)
}
