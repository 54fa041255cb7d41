package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
)

const maxNotesLength = 2000

// FormFlag accepts JSON booleans and the form encoding where only "yes" is true.
type FormFlag bool

func (f *FormFlag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "true":
		*f = true
	case string(b) == "false", string(b) == "null":
		*f = false
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FormFlag(strings.EqualFold(strings.TrimSpace(s), "yes"))
	default:
		return fmt.Errorf("invalid flag %s", b)
	}
	return nil
}

// RegisterVendorRequest is the registration input as submitted by the form or API.
type RegisterVendorRequest struct {
	VendorName               string   `json:"vendor_name"`
	BizRegNo                 string   `json:"biz_reg_no"`
	VendorType               string   `json:"vendor_type"`
	ExpectedAnnualSpend      any      `json:"expected_annual_spend,omitempty"`
	AdvancePayment           FormFlag `json:"advance_payment"`
	PIIAccessLevel           string   `json:"pii_access_level"`
	PublicProcurementRelated FormFlag `json:"public_procurement_related"`
	Notes                    string   `json:"notes,omitempty"`

	attrs Attributes
}

func (r *RegisterVendorRequest) Normalize() {
	if r == nil {
		return
	}
	r.VendorName = strings.TrimSpace(r.VendorName)
	r.BizRegNo = strings.TrimSpace(r.BizRegNo)
	r.VendorType = strings.TrimSpace(r.VendorType)
	r.PIIAccessLevel = strings.TrimSpace(r.PIIAccessLevel)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *RegisterVendorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.VendorName) > 200 {
		return dErrors.New(dErrors.CodeValidation, "vendor_name must be 200 characters or less")
	}
	if len(r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes must be 2000 characters or less")
	}

	if utf8.RuneCountInString(r.VendorName) < MinNameLength {
		return dErrors.New(dErrors.CodeValidation, "vendor_name must be at least 2 characters")
	}

	bizRegNo, err := domain.ParseBizRegNo(r.BizRegNo)
	if err != nil {
		return err
	}
	vendorType, err := ParseVendorType(r.VendorType)
	if err != nil {
		return err
	}
	pii, err := ParsePIIAccessLevel(r.PIIAccessLevel)
	if err != nil {
		return err
	}
	spend, err := ParseSpend(r.ExpectedAnnualSpend)
	if err != nil {
		return err
	}

	r.attrs = Attributes{
		Name:                     r.VendorName,
		BizRegNo:                 bizRegNo,
		Type:                     vendorType,
		ExpectedAnnualSpend:      spend,
		AdvancePayment:           bool(r.AdvancePayment),
		PIIAccessLevel:           pii,
		PublicProcurementRelated: bool(r.PublicProcurementRelated),
		Notes:                    r.Notes,
	}
	return nil
}

// Attributes returns the parsed registration fields. Valid only after Validate.
func (r *RegisterVendorRequest) Attributes() Attributes {
	return r.attrs
}

// ParseSpend accepts an absent value, a JSON number or a numeric string.
// Empty strings are treated as absent.
func ParseSpend(v any) (decimal.NullDecimal, error) {
	invalid := dErrors.New(dErrors.CodeValidation, "expected_annual_spend must be a non-negative number")
	var d decimal.Decimal
	switch t := v.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.NullDecimal{}, invalid
		}
		d = decimal.NewFromFloat(t)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return decimal.NullDecimal{}, nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.NullDecimal{}, invalid
		}
		d = parsed
	case decimal.Decimal:
		d = t
	default:
		return decimal.NullDecimal{}, invalid
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, invalid
	}
	return decimal.NewNullDecimal(d), nil
}
