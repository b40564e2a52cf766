// Package sqlite provides the public factory for the SQLite asset catalog.
// The implementation stays in internal/sqlite.
package sqlite

import (
	"github.com/mesh-intelligence/assetdesk/internal/sqlite"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// NewBackend creates a new SQLite catalog.
// The catalog is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewBackend()
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".assetdesk-db",
//	})
//	defer catalog.Detach()
func NewBackend() types.Catalog {
	return sqlite.NewBackend()
}
