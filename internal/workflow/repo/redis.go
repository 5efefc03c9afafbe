package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/testnotify-poc/server/internal/core/error"
	"github.com/testnotify-poc/server/internal/workflow/model"
	logx "github.com/testnotify-poc/server/pkg/logger"
)

const runLedgerKey = "notify:runs"

// RedisRunRepository keeps a capped list of completed-run records in Redis.
// Newest first; entries beyond maxEntries are trimmed away and the whole
// ledger expires after ttl of inactivity.
type RedisRunRepository struct {
	rdb        redis.Cmdable
	ttl        time.Duration
	maxEntries int
}

func NewRedisRunRepository(rdb redis.Cmdable, ttl time.Duration, maxEntries int) *RedisRunRepository {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &RedisRunRepository{rdb: rdb, ttl: ttl, maxEntries: maxEntries}
}

func (r *RedisRunRepository) RecordRun(ctx context.Context, record *model.RunRecord) error {
	if record == nil {
		return fmt.Errorf("run record is nil")
	}
	b, err := json.Marshal(record)
	if err != nil {
		logx.Error().Err(err).Str("run_id", record.RunID).Msg("failed to marshal run record")
		return fmt.Errorf("marshal run record: %w", err)
	}

	if err := r.rdb.LPush(ctx, runLedgerKey, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", runLedgerKey).Msg("failed to push run record to redis")
		return errx.WrapRedis(err)
	}
	if err := r.rdb.LTrim(ctx, runLedgerKey, 0, int64(r.maxEntries-1)).Err(); err != nil {
		logx.Error().Err(err).Str("key", runLedgerKey).Msg("failed to trim run ledger")
		return errx.WrapRedis(err)
	}
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, runLedgerKey, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", runLedgerKey).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", runLedgerKey).Dur("ttl", r.ttl).Msg("failed to set TTL on run ledger key")
		}
	}
	return nil
}

func (r *RedisRunRepository) RunCount(ctx context.Context) (int, error) {
	n, err := r.rdb.LLen(ctx, runLedgerKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", runLedgerKey).Msg("failed to get run count from redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.RunRepository = (*RedisRunRepository)(nil)
