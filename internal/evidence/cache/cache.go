// Package cache resolves provider evidence from snapshots of earlier
// screenings of the same vendor.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vendorscreen/internal/evidence/metrics"
	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/screening/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/sentinel"
	"vendorscreen/pkg/requestcontext"
)

// DefaultWindow is how long a snapshot counts as fresh.
const DefaultWindow = 24 * time.Hour

// SnapshotFinder returns the most recently checked snapshot for a vendor and
// provider, across all of that vendor's runs. It returns sentinel.ErrNotFound
// when there is none.
type SnapshotFinder interface {
	LatestSnapshot(ctx context.Context, vendorID domain.VendorID, provider providers.Name) (*models.EvidenceSnapshot, error)
}

// Rememberer is implemented by finders that index newly written snapshots.
type Rememberer interface {
	Remember(ctx context.Context, snaps []*models.EvidenceSnapshot) error
}

// Resolver serves fresh snapshots as provider results.
type Resolver struct {
	finder  SnapshotFinder
	window  time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Resolver)

func WithWindow(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.window = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(finder SnapshotFinder, opts ...Option) *Resolver {
	r := &Resolver{finder: finder, window: DefaultWindow}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Window returns the freshness window.
func (r *Resolver) Window() time.Duration { return r.window }

// Lookup returns the cached result for vendorID and provider. A snapshot is
// fresh while its age does not exceed the window. ok is false on a miss.
func (r *Resolver) Lookup(ctx context.Context, vendorID domain.VendorID, provider providers.Name) (providers.Result, bool, error) {
	snap, err := r.finder.LatestSnapshot(ctx, vendorID, provider)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.metrics.RecordCacheMiss(provider.String())
			return providers.Result{}, false, nil
		}
		return providers.Result{}, false, fmt.Errorf("find latest %s snapshot: %w", provider, err)
	}

	if age := requestcontext.Now(ctx).Sub(snap.CheckedAt); age > r.window {
		r.metrics.RecordCacheMiss(provider.String())
		return providers.Result{}, false, nil
	}

	res, err := FromSnapshot(snap)
	if err != nil {
		r.logger.WarnContext(ctx, "discarding undecodable cached snapshot",
			"vendor_id", vendorID,
			"provider", provider,
			"snapshot_id", snap.ID,
			"error", err,
		)
		r.metrics.RecordCacheMiss(provider.String())
		return providers.Result{}, false, nil
	}
	r.metrics.RecordCacheHit(provider.String())
	return res, true, nil
}

// Remember forwards freshly written snapshots to the finder when it keeps an
// index. Failures are logged; the snapshots are already durable.
func (r *Resolver) Remember(ctx context.Context, snaps []*models.EvidenceSnapshot) {
	rem, ok := r.finder.(Rememberer)
	if !ok {
		return
	}
	if err := rem.Remember(ctx, snaps); err != nil {
		r.logger.WarnContext(ctx, "failed to index evidence snapshots", "error", err)
	}
}

// FromSnapshot rebuilds a provider result from a stored snapshot. Missing
// status defaults to ok and missing message to the cache-hit marker.
func FromSnapshot(snap *models.EvidenceSnapshot) (providers.Result, error) {
	payload, err := snap.Payload()
	if err != nil {
		return providers.Result{}, err
	}
	status := snap.Status
	if status == "" {
		status = providers.StatusOK
	}
	message := snap.Message
	if message == "" {
		message = providers.CacheHitMessage
	}
	return providers.Result{
		Provider:   snap.ProviderName,
		Normalized: payload,
		RawHash:    snap.RawHash,
		CheckedAt:  snap.CheckedAt,
		Status:     status,
		Message:    message,
	}, nil
}
