package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
)

// VendorType is the vendor's business category.
type VendorType string

const (
	VendorTypeSupplier  VendorType = "supplier"
	VendorTypeAgency    VendorType = "agency"
	VendorTypeLogistics VendorType = "logistics"
	VendorTypeIT        VendorType = "IT"
	VendorTypeOther     VendorType = "other"
)

func (t VendorType) IsValid() bool {
	switch t {
	case VendorTypeSupplier, VendorTypeAgency, VendorTypeLogistics, VendorTypeIT, VendorTypeOther:
		return true
	}
	return false
}

// ParseVendorType accepts the canonical values; "it" is accepted for "IT".
func ParseVendorType(s string) (VendorType, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(VendorTypeIT)) {
		return VendorTypeIT, nil
	}
	t := VendorType(strings.ToLower(s))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "vendor_type must be one of supplier, agency, logistics, IT, other")
	}
	return t, nil
}

// PIIAccessLevel is how much personal data the vendor will handle.
type PIIAccessLevel string

const (
	PIIAccessNone    PIIAccessLevel = "none"
	PIIAccessLimited PIIAccessLevel = "limited"
	PIIAccessHigh    PIIAccessLevel = "high"
)

func (l PIIAccessLevel) IsValid() bool {
	switch l {
	case PIIAccessNone, PIIAccessLimited, PIIAccessHigh:
		return true
	}
	return false
}

func ParsePIIAccessLevel(s string) (PIIAccessLevel, error) {
	l := PIIAccessLevel(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "pii_access_level must be one of none, limited, high")
	}
	return l, nil
}

// MinNameLength is the minimum vendor name length in characters.
const MinNameLength = 2

// Vendor is a third party being onboarded or periodically reviewed.
//
// Invariants:
//   - Name has at least MinNameLength characters
//   - BizRegNo is a valid ten-digit registration number
//   - Type and PIIAccessLevel are one of their enumerated values
//   - ExpectedAnnualSpend, when set, is non-negative
type Vendor struct {
	ID                       domain.VendorID     `json:"id"`
	Name                     string              `json:"vendor_name"`
	BizRegNo                 domain.BizRegNo     `json:"biz_reg_no"`
	Type                     VendorType          `json:"vendor_type"`
	ExpectedAnnualSpend      decimal.NullDecimal `json:"expected_annual_spend"`
	AdvancePayment           bool                `json:"advance_payment"`
	PIIAccessLevel           PIIAccessLevel      `json:"pii_access_level"`
	PublicProcurementRelated bool                `json:"public_procurement_related"`
	Notes                    string              `json:"notes,omitempty"`
	CreatedAt                time.Time           `json:"created_at"`
}

// Attributes are the risk-relevant fields supplied at registration.
type Attributes struct {
	Name                     string
	BizRegNo                 domain.BizRegNo
	Type                     VendorType
	ExpectedAnnualSpend      decimal.NullDecimal
	AdvancePayment           bool
	PIIAccessLevel           PIIAccessLevel
	PublicProcurementRelated bool
	Notes                    string
}

func NewVendor(id domain.VendorID, attrs Attributes, now time.Time) (*Vendor, error) {
	name := strings.TrimSpace(attrs.Name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "vendor name must be at least 2 characters")
	}
	if _, err := domain.ParseBizRegNo(attrs.BizRegNo.String()); err != nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "biz_reg_no must be exactly 10 digits")
	}
	if !attrs.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid vendor type")
	}
	if !attrs.PIIAccessLevel.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid pii access level")
	}
	if attrs.ExpectedAnnualSpend.Valid && attrs.ExpectedAnnualSpend.Decimal.IsNegative() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "expected annual spend cannot be negative")
	}
	return &Vendor{
		ID:                       id,
		Name:                     name,
		BizRegNo:                 attrs.BizRegNo,
		Type:                     attrs.Type,
		ExpectedAnnualSpend:      attrs.ExpectedAnnualSpend,
		AdvancePayment:           attrs.AdvancePayment,
		PIIAccessLevel:           attrs.PIIAccessLevel,
		PublicProcurementRelated: attrs.PublicProcurementRelated,
		Notes:                    strings.TrimSpace(attrs.Notes),
		CreatedAt:                now,
	}, nil
}

// Spend returns the expected annual spend formatted for display, or "-".
func (v *Vendor) Spend() string {
	if !v.ExpectedAnnualSpend.Valid {
		return "-"
	}
	return v.ExpectedAnnualSpend.Decimal.StringFixed(0)
}
