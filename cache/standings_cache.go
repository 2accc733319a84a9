package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-fixtures/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultStandingsTTL = 5 * time.Minute

// StandingsCache stores computed tables between mutations. Every write path that
// changes completed matches or the confirmed roster must call Invalidate.
//
// Each tournament has a version counter next to its table. Invalidate bumps it,
// and a reader may only store a table folded under the version it read first,
// so a fold that raced a mutation is never written back.
type StandingsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStandingsCache(client redis.Cmdable, ttl time.Duration) *StandingsCache {
	if ttl <= 0 {
		ttl = DefaultStandingsTTL
	}
	return &StandingsCache{client: client, ttl: ttl}
}

// Оба ключа турнира в одном hash slot: тег {id} нужен для MULTI и Lua в кластере.
func standingsKey(tournamentID uuid.UUID) string {
	return fmt.Sprintf("standings:{%s}", tournamentID)
}

func versionKey(tournamentID uuid.UUID) string {
	return fmt.Sprintf("standings:{%s}:version", tournamentID)
}

// KEYS[1] version, KEYS[2] table; ARGV[1] expected version, ARGV[2] table, ARGV[3] ttl ms.
var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then current = '0' end
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Get returns the cached table and false on a miss.
func (c *StandingsCache) Get(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, bool, error) {
	raw, err := c.client.Get(ctx, standingsKey(tournamentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read standings for %s: %w", tournamentID, err)
	}

	var table []models.Standing
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached standings for %s: %w", tournamentID, err)
	}
	return table, true, nil
}

// Version returns the tournament's invalidation counter; a missing counter is 0.
func (c *StandingsCache) Version(ctx context.Context, tournamentID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(tournamentID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read standings version for %s: %w", tournamentID, err)
	}
	return v, nil
}

// SetIfVersion stores the table only while the counter still equals version.
// It reports whether the table was stored.
func (c *StandingsCache) SetIfVersion(ctx context.Context, tournamentID uuid.UUID, version int64, table []models.Standing) (bool, error) {
	raw, err := json.Marshal(table)
	if err != nil {
		return false, fmt.Errorf("failed to encode standings for %s: %w", tournamentID, err)
	}
	stored, err := setIfVersionScript.Run(ctx, c.client,
		[]string{versionKey(tournamentID), standingsKey(tournamentID)},
		version, raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to cache standings for %s: %w", tournamentID, err)
	}
	return stored == 1, nil
}

// Invalidate drops the table and bumps the counter in one transaction.
func (c *StandingsCache) Invalidate(ctx context.Context, tournamentID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(tournamentID))
		pipe.Del(ctx, standingsKey(tournamentID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate standings for %s: %w", tournamentID, err)
	}
	return nil
}
