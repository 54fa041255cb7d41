package store

import (
	"context"
	"sort"
	"sync"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/screening/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/sentinel"
)

// InMemoryStore keeps runs and snapshots in process memory. It also serves
// the evidence cache's latest-snapshot lookups.
type InMemoryStore struct {
	mu        sync.RWMutex
	runs      map[domain.ScreeningRunID]models.ScreeningRun
	snapshots []models.EvidenceSnapshot
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[domain.ScreeningRunID]models.ScreeningRun)}
}

func (s *InMemoryStore) CreateRun(_ context.Context, run *models.ScreeningRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; exists {
		return sentinel.ErrConflict
	}
	s.runs[run.ID] = *run
	return nil
}

func (s *InMemoryStore) CreateSnapshots(_ context.Context, snaps []*models.EvidenceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range snaps {
		s.snapshots = append(s.snapshots, *snap)
	}
	return nil
}

func (s *InMemoryStore) FindRun(_ context.Context, id domain.ScreeningRunID) (*models.ScreeningRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &run, nil
}

// ListRunsByVendor returns runs newest first.
func (s *InMemoryStore) ListRunsByVendor(_ context.Context, vendorID domain.VendorID) ([]*models.ScreeningRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ScreeningRun, 0)
	for _, run := range s.runs {
		if run.VendorID == vendorID {
			r := run
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunAt.After(out[j].RunAt) })
	return out, nil
}

func (s *InMemoryStore) ListSnapshotsByRun(_ context.Context, runID domain.ScreeningRunID) ([]*models.EvidenceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.EvidenceSnapshot, 0, len(providers.Order))
	for _, snap := range s.snapshots {
		if snap.RunID == runID {
			cp := snap
			out = append(out, &cp)
		}
	}
	return models.OrderSnapshots(out), nil
}

// LatestSnapshot returns the most recently checked snapshot for the vendor and
// provider across all runs. Ties go to the later write.
func (s *InMemoryStore) LatestSnapshot(_ context.Context, vendorID domain.VendorID, provider providers.Name) (*models.EvidenceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.EvidenceSnapshot
	for i := range s.snapshots {
		snap := &s.snapshots[i]
		if snap.VendorID != vendorID || snap.ProviderName != provider {
			continue
		}
		if latest == nil || !snap.CheckedAt.Before(latest.CheckedAt) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}
