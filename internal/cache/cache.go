// Package cache keeps asset list query results in Redis. A cached catalog
// wraps another catalog; Fetch results are stored under a key derived from
// the table and filter, and any write to a table bumps that table's
// generation so older entries are never read again.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// Defaults applied by NewCatalog when the config leaves them zero.
const (
	DefaultPrefix  = "assetdesk:"
	DefaultTTL     = time.Minute
	defaultTimeout = 2 * time.Second
)

// RedisClient is the subset of go-redis client methods the cache uses.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Close() error
}

// Config holds connection and keying parameters.
type Config struct {
	Address  string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// Dial connects to Redis and verifies the connection with PING.
func Dial(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr: cfg.Address,
		DB:   cfg.DB,
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping failed: %w", cfg.Address, err)
	}
	return client, nil
}

// Catalog is a types.Catalog whose tables cache Fetch results.
type Catalog struct {
	inner  types.Catalog
	client RedisClient
	cfg    Config
	logger *slog.Logger
}

// NewCatalog wraps inner. A nil logger discards log output.
func NewCatalog(inner types.Catalog, client RedisClient, cfg Config, logger *slog.Logger) *Catalog {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{inner: inner, client: client, cfg: cfg, logger: logger}
}

// Attach attaches the wrapped catalog.
func (c *Catalog) Attach(config types.Config) error {
	return c.inner.Attach(config)
}

// Detach detaches the wrapped catalog and closes the Redis client.
func (c *Catalog) Detach() error {
	err := c.inner.Detach()
	if cerr := c.client.Close(); cerr != nil && !errors.Is(cerr, redis.ErrClosed) {
		err = errors.Join(err, cerr)
	}
	return err
}

// GetTable returns the wrapped table with Fetch caching in front of it.
func (c *Catalog) GetTable(name string) (types.Table, error) {
	t, err := c.inner.GetTable(name)
	if err != nil {
		return nil, err
	}
	return &Table{name: name, inner: t, catalog: c}, nil
}

// Table caches Fetch results of one catalog table.
type Table struct {
	name    string
	inner   types.Table
	catalog *Catalog
}

// Get reads through to the wrapped table.
func (t *Table) Get(tag string) (any, error) {
	return t.inner.Get(tag)
}

// Set writes through and invalidates cached listings of the table.
func (t *Table) Set(tag string, data any) (string, error) {
	id, err := t.inner.Set(tag, data)
	if err != nil {
		return "", err
	}
	t.invalidate()
	return id, nil
}

// Delete writes through and invalidates cached listings of the table.
func (t *Table) Delete(tag string) error {
	if err := t.inner.Delete(tag); err != nil {
		return err
	}
	t.invalidate()
	return nil
}

// Fetch returns cached results when present. Redis failures fall back to
// the wrapped table.
func (t *Table) Fetch(filter map[string]any) ([]any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	log := t.catalog.logger.With("table", t.name)

	key, err := t.queryKey(ctx, filter)
	if err != nil {
		log.Warn("cache key unavailable, reading catalog", "error", err)
		return t.inner.Fetch(filter)
	}

	raw, err := t.catalog.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		results, derr := decodeResults(t.name, []byte(raw))
		if derr == nil {
			log.Debug("query is already cached", "key", key)
			return results, nil
		}
		log.Warn("discarding undecodable cache entry", "key", key, "error", derr)
	case errors.Is(err, redis.Nil):
		log.Debug("query is not cached, fetching from catalog", "key", key)
	default:
		log.Warn("cache read failed", "key", key, "error", err)
	}

	results, err := t.inner.Fetch(filter)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("encoding %s results: %w", t.name, err)
	}
	if err := t.catalog.client.Set(ctx, key, data, t.catalog.cfg.TTL).Err(); err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}
	return results, nil
}

func (t *Table) generationKey() string {
	return t.catalog.cfg.Prefix + "gen:" + t.name
}

// queryKey is prefix + "query_results:" + table + ":" + generation + ":" +
// md5 of the table name and canonical filter JSON.
func (t *Table) queryKey(ctx context.Context, filter map[string]any) (string, error) {
	gen, err := t.catalog.client.Get(ctx, t.generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", err
	}
	hash, err := FilterHash(t.name, filter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%squery_results:%s:%s:%s", t.catalog.cfg.Prefix, t.name, gen, hash), nil
}

func (t *Table) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := t.catalog.client.Incr(ctx, t.generationKey()).Err(); err != nil {
		t.catalog.logger.Warn("cache invalidation failed", "table", t.name, "error", err)
	}
}

// FilterHash returns the hex md5 of the table name and the filter encoded
// as JSON. Map keys encode sorted, so equal filters hash equally.
func FilterHash(table string, filter map[string]any) (string, error) {
	if filter == nil {
		filter = map[string]any{}
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("encoding filter: %w", err)
	}
	sum := md5.Sum(append([]byte(table+"_"), data...))
	return hex.EncodeToString(sum[:]), nil
}

func decodeResults(table string, data []byte) ([]any, error) {
	switch table {
	case types.VehiclesTable:
		return decodeAs[types.Vehicle](data)
	case types.BatteryPacksTable:
		return decodeAs[types.BatteryPack](data)
	default:
		return nil, types.ErrTableNotFound
	}
}

func decodeAs[T any](data []byte) ([]any, error) {
	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out, nil
}
