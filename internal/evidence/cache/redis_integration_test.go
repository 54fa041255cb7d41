//go:build integration

package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vendorscreen/internal/evidence/cache"
	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/screening/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/sentinel"
	"vendorscreen/pkg/testutil/containers"
)

type countingFinder struct {
	snap  *models.EvidenceSnapshot
	calls int
}

func (f *countingFinder) LatestSnapshot(_ context.Context, _ domain.VendorID, _ providers.Name) (*models.EvidenceSnapshot, error) {
	f.calls++
	if f.snap == nil {
		return nil, sentinel.ErrNotFound
	}
	return f.snap, nil
}

type RedisIndexSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisIndexSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisIndexSuite))
}

func (s *RedisIndexSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisIndexSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func snapshotAt(vendorID domain.VendorID, checkedAt time.Time) *models.EvidenceSnapshot {
	payload, _ := json.Marshal(providers.G2BNormalized{HasSanction: providers.True, SanctionValid: providers.False, LastCheckedAt: checkedAt})
	return &models.EvidenceSnapshot{
		ID:           domain.NewSnapshotID(),
		RunID:        domain.NewScreeningRunID(),
		VendorID:     vendorID,
		ProviderName: providers.NameG2B,
		Status:       providers.StatusOK,
		Normalized:   payload,
		RawHash:      "deadbeef",
		CheckedAt:    checkedAt,
	}
}

func (s *RedisIndexSuite) TestReadThrough() {
	ctx := context.Background()
	vendorID := domain.NewVendorID()
	next := &countingFinder{snap: snapshotAt(vendorID, time.Now().Add(-time.Hour).UTC())}
	index := cache.NewRedisIndex(s.redis.Client, next, cache.DefaultWindow, nil)

	first, err := index.LatestSnapshot(ctx, vendorID, providers.NameG2B)
	s.Require().NoError(err)
	second, err := index.LatestSnapshot(ctx, vendorID, providers.NameG2B)
	s.Require().NoError(err)

	s.Equal(1, next.calls)
	s.Equal(first.ID, second.ID)
	s.Equal(first.RawHash, second.RawHash)
	s.JSONEq(string(first.Normalized), string(second.Normalized))

	ttl, err := s.redis.Client.TTL(ctx, "evidence:"+vendorID.String()+":G2B").Result()
	s.Require().NoError(err)
	s.LessOrEqual(ttl, 23*time.Hour)
}

func (s *RedisIndexSuite) TestRememberServesNewestSnapshot() {
	ctx := context.Background()
	vendorID := domain.NewVendorID()
	next := &countingFinder{snap: snapshotAt(vendorID, time.Now().Add(-2*time.Hour).UTC())}
	index := cache.NewRedisIndex(s.redis.Client, next, cache.DefaultWindow, nil)

	newer := snapshotAt(vendorID, time.Now().UTC())
	s.Require().NoError(index.Remember(ctx, []*models.EvidenceSnapshot{newer}))

	got, err := index.LatestSnapshot(ctx, vendorID, providers.NameG2B)
	s.Require().NoError(err)
	s.Equal(newer.ID, got.ID)
	s.Equal(0, next.calls)
}

func (s *RedisIndexSuite) TestStaleSnapshotsAreNotIndexed() {
	ctx := context.Background()
	vendorID := domain.NewVendorID()
	index := cache.NewRedisIndex(s.redis.Client, &countingFinder{}, cache.DefaultWindow, nil)

	s.Require().NoError(index.Remember(ctx, []*models.EvidenceSnapshot{snapshotAt(vendorID, time.Now().Add(-48*time.Hour))}))

	exists, err := s.redis.Client.Exists(ctx, "evidence:"+vendorID.String()+":G2B").Result()
	s.Require().NoError(err)
	s.Zero(exists)
}

func (s *RedisIndexSuite) TestMissFallsThrough() {
	index := cache.NewRedisIndex(s.redis.Client, &countingFinder{}, cache.DefaultWindow, nil)

	_, err := index.LatestSnapshot(context.Background(), domain.NewVendorID(), providers.NameNTS)

	s.ErrorIs(err, sentinel.ErrNotFound)
}
