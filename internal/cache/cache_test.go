package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/assetdesk/internal/sqlite"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// countingTable records how often Fetch reaches the catalog.
type countingTable struct {
	types.Table
	fetches int
}

func (c *countingTable) Fetch(filter map[string]any) ([]any, error) {
	c.fetches++
	return c.Table.Fetch(filter)
}

type countingCatalog struct {
	types.Catalog
	tables map[string]*countingTable
}

func (c *countingCatalog) GetTable(name string) (types.Table, error) {
	if t, ok := c.tables[name]; ok {
		return t, nil
	}
	inner, err := c.Catalog.GetTable(name)
	if err != nil {
		return nil, err
	}
	t := &countingTable{Table: inner}
	c.tables[name] = t
	return t, nil
}

func newTestCatalog(t *testing.T) (*Catalog, *countingCatalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	backend := sqlite.NewBackend()
	require.NoError(t, backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	inner := &countingCatalog{Catalog: backend, tables: map[string]*countingTable{}}

	cat := NewCatalog(inner, client, Config{Address: mr.Addr(), Prefix: "test:", TTL: time.Hour}, nil)
	t.Cleanup(func() { cat.Detach() })
	return cat, inner, mr
}

func TestFetchCachesResults(t *testing.T) {
	cat, inner, mr := newTestCatalog(t)
	tbl, err := cat.GetTable(types.VehiclesTable)
	require.NoError(t, err)

	first, err := tbl.Fetch(map[string]any{"company": "Ford"})
	require.NoError(t, err)
	second, err := tbl.Fetch(map[string]any{"company": "Ford"})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.tables[types.VehiclesTable].fetches)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].(*types.Vehicle).AssetTag, second[0].(*types.Vehicle).AssetTag)

	var queryKeys []string
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "test:query_results:vehicles:") {
			queryKeys = append(queryKeys, k)
		}
	}
	require.Len(t, queryKeys, 1)
	assert.Equal(t, time.Hour, mr.TTL(queryKeys[0]))
}

func TestWritesInvalidateListings(t *testing.T) {
	cat, inner, _ := newTestCatalog(t)
	tbl, err := cat.GetTable(types.VehiclesTable)
	require.NoError(t, err)

	before, err := tbl.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, before, 3)

	_, err = tbl.Set("", &types.Vehicle{AssetTag: "VH-2001", Model: "Ioniq 5", Company: "Hyundai"})
	require.NoError(t, err)

	after, err := tbl.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, after, 4)

	require.NoError(t, tbl.Delete("VH-2001"))
	afterDelete, err := tbl.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, afterDelete, 3)
	assert.Equal(t, 3, inner.tables[types.VehiclesTable].fetches)
}

func TestFetchFallsBackWhenRedisIsDown(t *testing.T) {
	cat, inner, mr := newTestCatalog(t)
	tbl, err := cat.GetTable(types.BatteryPacksTable)
	require.NoError(t, err)

	mr.Close()
	got, err := tbl.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, inner.tables[types.BatteryPacksTable].fetches)
}

func TestFetchDecodesBatteryPacks(t *testing.T) {
	cat, _, _ := newTestCatalog(t)
	tbl, err := cat.GetTable(types.BatteryPacksTable)
	require.NoError(t, err)

	_, err = tbl.Fetch(nil)
	require.NoError(t, err)
	cached, err := tbl.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	pack, ok := cached[0].(*types.BatteryPack)
	require.True(t, ok)
	assert.Equal(t, "BP-202", pack.AssetTag)
}

func TestFilterHash(t *testing.T) {
	a, err := FilterHash("vehicles", map[string]any{"company": "Ford", "limit": 2})
	require.NoError(t, err)
	b, err := FilterHash("vehicles", map[string]any{"limit": 2, "company": "Ford"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)

	c, err := FilterHash("battery_packs", map[string]any{"company": "Ford", "limit": 2})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	empty, err := FilterHash("vehicles", nil)
	require.NoError(t, err)
	emptyMap, err := FilterHash("vehicles", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, empty, emptyMap)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Dial(context.Background(), Config{Address: mr.Addr()})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = Dial(context.Background(), Config{Address: mr.Addr()})
	assert.Error(t, err)
}
