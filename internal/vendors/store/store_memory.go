package store

import (
	"context"
	"sort"
	"sync"

	"vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/sentinel"
)

// InMemory keeps vendors in process memory, unique by registration number.
type InMemory struct {
	mu         sync.RWMutex
	vendors    map[domain.VendorID]models.Vendor
	byBizRegNo map[domain.BizRegNo]domain.VendorID
}

func NewInMemory() *InMemory {
	return &InMemory{
		vendors:    make(map[domain.VendorID]models.Vendor),
		byBizRegNo: make(map[domain.BizRegNo]domain.VendorID),
	}
}

func (s *InMemory) Create(_ context.Context, v *models.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byBizRegNo[v.BizRegNo]; taken {
		return sentinel.ErrConflict
	}
	if _, exists := s.vendors[v.ID]; exists {
		return sentinel.ErrConflict
	}
	s.vendors[v.ID] = *v
	s.byBizRegNo[v.BizRegNo] = v.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.VendorID) (*models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vendors[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}

func (s *InMemory) FindByBizRegNo(_ context.Context, bizRegNo domain.BizRegNo) (*models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byBizRegNo[bizRegNo]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	v := s.vendors[id]
	return &v, nil
}

// List returns vendors newest first.
func (s *InMemory) List(_ context.Context) ([]*models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		cp := v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
