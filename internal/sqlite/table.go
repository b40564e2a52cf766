package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// table implements types.Table for one asset type. It knows its table name
// and the backend it belongs to for DB access and JSONL writes.
type table struct {
	name    string
	backend *Backend
}

func newTable(b *Backend, name string) *table {
	return &table{name: name, backend: b}
}

// Get retrieves an asset by tag.
// Returns ErrInvalidID if tag is empty, ErrNotFound if not found.
func (t *table) Get(tag string) (any, error) {
	if tag == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrCatalogDetached
	}

	switch t.name {
	case types.VehiclesTable:
		return t.getVehicle(tag)
	case types.BatteryPacksTable:
		return t.getBatteryPack(tag)
	default:
		return nil, types.ErrTableNotFound
	}
}

// Set creates or updates an asset. An empty tag uses the entity's own asset
// tag. The entity is validated the way the create form validates it.
func (t *table) Set(tag string, data any) (string, error) {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return "", types.ErrCatalogDetached
	}

	switch t.name {
	case types.VehiclesTable:
		return t.setVehicle(tag, data)
	case types.BatteryPacksTable:
		return t.setBatteryPack(tag, data)
	default:
		return "", types.ErrTableNotFound
	}
}

// Delete removes an asset by tag.
// Returns ErrInvalidID if tag is empty, ErrNotFound if not found.
func (t *table) Delete(tag string) error {
	if tag == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrCatalogDetached
	}

	res, err := t.backend.db.Exec("DELETE FROM "+t.name+" WHERE asset_tag = ?", tag)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", tag, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return t.persist()
}

// Fetch returns assets matching the filter in catalog order. Empty filter
// matches all.
func (t *table) Fetch(filter map[string]any) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrCatalogDetached
	}

	switch t.name {
	case types.VehiclesTable:
		return t.fetchVehicles(filter)
	case types.BatteryPacksTable:
		return t.fetchBatteryPacks(filter)
	default:
		return nil, types.ErrTableNotFound
	}
}

// persist rewrites the table's JSONL file from SQLite.
func (t *table) persist() error {
	switch t.name {
	case types.VehiclesTable:
		return persistVehicles(t.backend.db, t.backend.config.DataDir)
	case types.BatteryPacksTable:
		return persistBatteryPacks(t.backend.db, t.backend.config.DataDir)
	default:
		return types.ErrTableNotFound
	}
}

// whereClause turns a Fetch filter into SQL. companyColumn names the column
// the "company" key filters on. Unknown keys are ignored.
func whereClause(filter map[string]any, companyColumn string) (string, []any, error) {
	var conditions []string
	var args []any

	for key, column := range map[string]string{
		"status_label": "status_label",
		"company":      companyColumn,
	} {
		raw, ok := filter[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, column+" = ?")
		args = append(args, s)
	}

	var clause string
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}
	clause += " ORDER BY rowid"

	limit, offset := -1, 0
	if raw, ok := filter["limit"]; ok {
		l, ok := toInt(raw)
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		if l > 0 {
			limit = l
		}
	}
	if raw, ok := filter["offset"]; ok {
		o, ok := toInt(raw)
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		offset = o
	}
	if limit > 0 || offset > 0 {
		clause += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return clause, args, nil
}

// toInt converts filter values decoded from flags or JSON to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// today returns the current UTC date in the catalog's date format.
func today() string {
	return time.Now().UTC().Format(time.DateOnly)
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
