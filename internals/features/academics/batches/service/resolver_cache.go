package service

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const resolverCacheTTL = 60 * time.Second

// cachedResolver is a read-through decorator over BatchResolver. Batch
// membership is mutable (student CRUD owns it), so entries are short-lived
// and invalidation is TTL-only; aggregation reads already tolerate views
// this stale. Any cache failure falls through to the database.
type cachedResolver struct {
	inner BatchResolver
	rdb   *redis.Client
}

// NewCachedBatchResolver returns inner unchanged when rdb is nil.
func NewCachedBatchResolver(inner BatchResolver, rdb *redis.Client) BatchResolver {
	if rdb == nil {
		return inner
	}
	return &cachedResolver{inner: inner, rdb: rdb}
}

func (r *cachedResolver) StudentIDsForBatch(ctx context.Context, schoolID uuid.UUID, batch string) ([]uuid.UUID, error) {
	key := "batch:students:" + schoolID.String() + ":" + NormalizeBatchName(batch)
	return r.through(ctx, key, func() ([]uuid.UUID, error) {
		return r.inner.StudentIDsForBatch(ctx, schoolID, batch)
	})
}

func (r *cachedResolver) ClassSectionIDsForBatch(ctx context.Context, schoolID uuid.UUID, batch string) ([]uuid.UUID, error) {
	key := "batch:sections:" + schoolID.String() + ":" + NormalizeBatchName(batch)
	return r.through(ctx, key, func() ([]uuid.UUID, error) {
		return r.inner.ClassSectionIDsForBatch(ctx, schoolID, batch)
	})
}

func (r *cachedResolver) through(ctx context.Context, key string, fetch func() ([]uuid.UUID, error)) ([]uuid.UUID, error) {
	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var ids []uuid.UUID
		if err := sonic.Unmarshal(raw, &ids); err == nil {
			return ids, nil
		}
	}

	ids, err := fetch()
	if err != nil {
		return nil, err
	}

	if raw, err := sonic.Marshal(ids); err == nil {
		if err := r.rdb.Set(ctx, key, raw, resolverCacheTTL).Err(); err != nil {
			log.Printf("[WARN] batch resolver cache set failed: %v", err)
		}
	}
	return ids, nil
}
