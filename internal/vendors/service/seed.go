package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/platform/sentinel"
)

// DemoVendors are loaded by Seed.
var DemoVendors = []models.Attributes{
	{
		Name:                     "Seoul Logistics Co.",
		BizRegNo:                 "1234567890",
		Type:                     models.VendorTypeLogistics,
		ExpectedAnnualSpend:      decimal.NewNullDecimal(decimal.NewFromInt(120_000_000)),
		AdvancePayment:           true,
		PIIAccessLevel:           models.PIIAccessLimited,
		PublicProcurementRelated: false,
		Notes:                    "Demo vendor for logistics.",
	},
	{
		Name:                     "Hanbit IT Services",
		BizRegNo:                 "0987654321",
		Type:                     models.VendorTypeIT,
		ExpectedAnnualSpend:      decimal.NewNullDecimal(decimal.NewFromInt(250_000_000)),
		AdvancePayment:           false,
		PIIAccessLevel:           models.PIIAccessHigh,
		PublicProcurementRelated: true,
		Notes:                    "Demo vendor for IT services.",
	},
}

// Seed registers the demo vendors, skipping registration numbers that
// already exist. It returns the vendors it created.
func (s *Service) Seed(ctx context.Context) ([]*models.Vendor, error) {
	created := make([]*models.Vendor, 0, len(DemoVendors))
	for _, attrs := range DemoVendors {
		_, err := s.vendors.FindByBizRegNo(ctx, attrs.BizRegNo)
		if err == nil {
			continue
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return created, err
		}
		v, err := s.create(ctx, attrs)
		if err != nil {
			return created, err
		}
		created = append(created, v)
	}
	return created, nil
}
