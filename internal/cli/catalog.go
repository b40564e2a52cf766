package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/assetdesk/internal/cache"
	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/internal/sqlite"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// openCatalog attaches the SQLite catalog, fronted by the Redis cache when
// cache.redis_addr is set. An unreachable Redis is logged and skipped.
// The caller must Detach the result.
func (a *app) openCatalog(ctx context.Context) (types.Catalog, error) {
	var cat types.Catalog = sqlite.NewBackend()

	if addr := a.settings.Cache.Address; addr != "" {
		client, err := cache.Dial(ctx, a.settings.Cache)
		if err != nil {
			a.logger.Warn("redis unavailable, continuing without cache", "addr", addr, "error", err)
		} else {
			cat = cache.NewCatalog(cat, client, a.settings.Cache, a.logger)
			a.logger.Debug("query cache enabled", "addr", addr)
		}
	}

	if err := cat.Attach(a.settings.catalogConfig()); err != nil {
		return nil, sysError(fmt.Errorf("attach catalog: %w", err))
	}
	return cat, nil
}

// assetTable resolves an asset path segment to its catalog table.
func assetTable(cat types.Catalog, asset string) (types.Table, error) {
	name, ok := types.TableForAsset(asset)
	if !ok {
		return nil, userError(fmt.Errorf("%w: %q (valid: vehicles, battery-packs)", pages.ErrUnknownAsset, asset))
	}
	tbl, err := cat.GetTable(name)
	if err != nil {
		return nil, sysError(fmt.Errorf("get table: %w", err))
	}
	return tbl, nil
}

// classify maps catalog errors to exit codes: bad input and missing assets
// are user errors, everything else is a system error.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidFilter),
		errors.Is(err, pages.ErrUnknownAsset):
		return userError(err)
	default:
		return sysError(err)
	}
}
