package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/screening/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/requestcontext"
)

// RedisIndex keeps the latest snapshot per vendor and provider in Redis in
// front of the durable store. Entries expire when the snapshot leaves the
// freshness window. Redis failures fall through to the store.
type RedisIndex struct {
	client *redis.Client
	next   SnapshotFinder
	window time.Duration
	logger *slog.Logger
}

func NewRedisIndex(client *redis.Client, next SnapshotFinder, window time.Duration, logger *slog.Logger) *RedisIndex {
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RedisIndex{client: client, next: next, window: window, logger: logger}
}

func indexKey(vendorID domain.VendorID, provider providers.Name) string {
	return fmt.Sprintf("evidence:%s:%s", vendorID, provider)
}

func (r *RedisIndex) LatestSnapshot(ctx context.Context, vendorID domain.VendorID, provider providers.Name) (*models.EvidenceSnapshot, error) {
	key := indexKey(vendorID, provider)
	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var snap models.EvidenceSnapshot
		if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil {
			return &snap, nil
		}
		r.logger.WarnContext(ctx, "corrupt evidence index entry", "key", key)
	case !errors.Is(err, redis.Nil):
		r.logger.WarnContext(ctx, "evidence index unavailable, reading store", "key", key, "error", err)
	}

	snap, err := r.next.LatestSnapshot(ctx, vendorID, provider)
	if err != nil {
		return nil, err
	}
	r.put(ctx, snap)
	return snap, nil
}

// Remember indexes snapshots written by a new run.
func (r *RedisIndex) Remember(ctx context.Context, snaps []*models.EvidenceSnapshot) error {
	var errs []error
	for _, snap := range snaps {
		if err := r.set(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *RedisIndex) put(ctx context.Context, snap *models.EvidenceSnapshot) {
	if err := r.set(ctx, snap); err != nil {
		r.logger.WarnContext(ctx, "failed to index evidence snapshot",
			"vendor_id", snap.VendorID,
			"provider", snap.ProviderName,
			"error", err,
		)
	}
}

func (r *RedisIndex) set(ctx context.Context, snap *models.EvidenceSnapshot) error {
	ttl := r.window - requestcontext.Now(ctx).Sub(snap.CheckedAt)
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, indexKey(snap.VendorID, snap.ProviderName), data, ttl).Err(); err != nil {
		return fmt.Errorf("index snapshot: %w", err)
	}
	return nil
}
