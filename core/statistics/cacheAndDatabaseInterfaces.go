package statistics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix    = "simulation:"
	simulationListKey = "simulation_keys"
	defaultExpiration = 24 * time.Hour
)

// CachedResult is what the cache and database store per canonical scenario.
type CachedResult struct {
	RunID   uuid.UUID `json:"run_id"`
	Summary *Summary  `json:"summary"`
}

type Cache interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key string, value *CachedResult) error
	Keys(ctx context.Context) ([]string, error)
	SetGeneral(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetGeneral(ctx context.Context, key string) (string, error)
}

type Database interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Set(ctx context.Context, key string, value *CachedResult) error
}

type DragonflyCache struct {
	client          *redis.Client
	maxCacheEntries int
}

func NewDragonflyCache(client *redis.Client, maxCacheEntries int) *DragonflyCache {
	return &DragonflyCache{
		client:          client,
		maxCacheEntries: maxCacheEntries,
	}
}

func (c *DragonflyCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	cacheKey := cacheKeyPrefix + key
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, err
	}

	var result CachedResult
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	// Move this key to the front of the list (most recently used)
	c.client.LRem(ctx, simulationListKey, 0, cacheKey)
	c.client.LPush(ctx, simulationListKey, cacheKey)

	return &result, nil
}

func (c *DragonflyCache) Set(ctx context.Context, key string, value *CachedResult) error {
	cacheKey := cacheKeyPrefix + key
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()

	pipe.Set(ctx, cacheKey, data, defaultExpiration)

	// Front of the list is most recently used
	pipe.LPush(ctx, simulationListKey, cacheKey)

	pipe.LTrim(ctx, simulationListKey, 0, int64(c.maxCacheEntries-1))

	// Delete any simulation keys that fell off the end of the list
	pipe.Eval(ctx, `
		local keys = redis.call('LRANGE', KEYS[1], ARGV[1], -1)
		if #keys > 0 then
			redis.call('DEL', unpack(keys))
		end
		redis.call('LTRIM', KEYS[1], 0, ARGV[1] - 1)
	`, []string{simulationListKey}, c.maxCacheEntries)

	_, err = pipe.Exec(ctx)
	return err
}

// Keys lists the cached scenario keys, most recently used first, without
// their prefix.
func (c *DragonflyCache) Keys(ctx context.Context) ([]string, error) {
	raw, err := c.client.LRange(ctx, simulationListKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k[len(cacheKeyPrefix):])
	}
	return keys, nil
}

func (c *DragonflyCache) SetGeneral(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *DragonflyCache) GetGeneral(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

type PostgresDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(pool *pgxpool.Pool) *PostgresDB {
	return &PostgresDB{pool: pool}
}

func (db *PostgresDB) Get(ctx context.Context, key string) (*CachedResult, error) {
	var data []byte
	err := db.pool.QueryRow(ctx, "SELECT data FROM simulation_results WHERE scenario = $1", key).Scan(&data)
	if err != nil {
		return nil, err
	}

	var result CachedResult
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (db *PostgresDB) Set(ctx context.Context, key string, value *CachedResult) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		"INSERT INTO simulation_results (scenario, run_id, data) VALUES ($1, $2, $3) ON CONFLICT (scenario) DO UPDATE SET run_id = $2, data = $3",
		key, value.RunID, data)
	return err
}
