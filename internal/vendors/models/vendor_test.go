package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
)

type RegisterVendorRequestSuite struct {
	suite.Suite
}

func TestRegisterVendorRequestSuite(t *testing.T) {
	suite.Run(t, new(RegisterVendorRequestSuite))
}

func (s *RegisterVendorRequestSuite) decode(body string) *RegisterVendorRequest {
	var req RegisterVendorRequest
	s.Require().NoError(json.Unmarshal([]byte(body), &req))
	req.Normalize()
	return &req
}

func (s *RegisterVendorRequestSuite) TestValidation() {
	s.Run("form encoded request passes", func() {
		req := s.decode(`{"vendor_name":" Seoul Logistics Co. ","biz_reg_no":"1234567890","vendor_type":"logistics",
			"expected_annual_spend":"120000000","advance_payment":"yes","pii_access_level":"limited","public_procurement_related":"no"}`)

		s.Require().NoError(req.Validate())
		attrs := req.Attributes()
		s.Equal("Seoul Logistics Co.", attrs.Name)
		s.Equal(domain.BizRegNo("1234567890"), attrs.BizRegNo)
		s.Equal(VendorTypeLogistics, attrs.Type)
		s.True(attrs.ExpectedAnnualSpend.Valid)
		s.True(attrs.ExpectedAnnualSpend.Decimal.Equal(decimal.NewFromInt(120_000_000)))
		s.True(attrs.AdvancePayment)
		s.False(attrs.PublicProcurementRelated)
	})

	s.Run("json booleans and numbers pass", func() {
		req := s.decode(`{"vendor_name":"Hanbit IT Services","biz_reg_no":"0987654321","vendor_type":"IT",
			"expected_annual_spend":250000000,"advance_payment":false,"pii_access_level":"high","public_procurement_related":true}`)

		s.Require().NoError(req.Validate())
		s.True(req.Attributes().PublicProcurementRelated)
		s.Equal(VendorTypeIT, req.Attributes().Type)
	})

	s.Run("spend is optional", func() {
		for _, spend := range []string{``, `"expected_annual_spend":"",`, `"expected_annual_spend":null,`} {
			req := s.decode(`{` + spend + `"vendor_name":"Acme","biz_reg_no":"1112223334","vendor_type":"other","pii_access_level":"none"}`)
			s.Require().NoError(req.Validate())
			s.False(req.Attributes().ExpectedAnnualSpend.Valid)
		}
	})

	s.Run("rejects invalid fields", func() {
		cases := map[string]string{
			"short name":     `{"vendor_name":"A","biz_reg_no":"1234567890","vendor_type":"other","pii_access_level":"none"}`,
			"short reg no":   `{"vendor_name":"Acme","biz_reg_no":"123456789","vendor_type":"other","pii_access_level":"none"}`,
			"dashed reg no":  `{"vendor_name":"Acme","biz_reg_no":"123-45-67890","vendor_type":"other","pii_access_level":"none"}`,
			"unknown type":   `{"vendor_name":"Acme","biz_reg_no":"1234567890","vendor_type":"bank","pii_access_level":"none"}`,
			"unknown pii":    `{"vendor_name":"Acme","biz_reg_no":"1234567890","vendor_type":"other","pii_access_level":"all"}`,
			"negative spend": `{"vendor_name":"Acme","biz_reg_no":"1234567890","vendor_type":"other","pii_access_level":"none","expected_annual_spend":-1}`,
			"text spend":     `{"vendor_name":"Acme","biz_reg_no":"1234567890","vendor_type":"other","pii_access_level":"none","expected_annual_spend":"lots"}`,
		}
		for name, body := range cases {
			req := s.decode(body)
			err := req.Validate()
			s.Require().Error(err, name)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), name)
		}
	})
}

func (s *RegisterVendorRequestSuite) TestFormFlag() {
	var f FormFlag
	s.NoError(json.Unmarshal([]byte(`"YES"`), &f))
	s.True(bool(f))
	s.NoError(json.Unmarshal([]byte(`"on"`), &f))
	s.False(bool(f))
	s.NoError(json.Unmarshal([]byte(`true`), &f))
	s.True(bool(f))
	s.Error(json.Unmarshal([]byte(`1`), &f))
}

type VendorSuite struct {
	suite.Suite
}

func TestVendorSuite(t *testing.T) {
	suite.Run(t, new(VendorSuite))
}

func (s *VendorSuite) validAttrs() Attributes {
	return Attributes{
		Name:           "Acme Supplies",
		BizRegNo:       "1234567890",
		Type:           VendorTypeSupplier,
		PIIAccessLevel: PIIAccessNone,
	}
}

func (s *VendorSuite) TestInvariants() {
	now := time.Now()

	s.Run("valid vendor", func() {
		v, err := NewVendor(domain.NewVendorID(), s.validAttrs(), now)
		s.Require().NoError(err)
		s.Equal("Acme Supplies", v.Name)
		s.Equal("-", v.Spend())
	})

	s.Run("rejects negative spend", func() {
		attrs := s.validAttrs()
		attrs.ExpectedAnnualSpend = decimal.NewNullDecimal(decimal.NewFromInt(-5))
		_, err := NewVendor(domain.NewVendorID(), attrs, now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects unparsed registration number", func() {
		attrs := s.validAttrs()
		attrs.BizRegNo = "12345"
		_, err := NewVendor(domain.NewVendorID(), attrs, now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects invalid enum", func() {
		attrs := s.validAttrs()
		attrs.Type = "bank"
		_, err := NewVendor(domain.NewVendorID(), attrs, now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *VendorSuite) TestParseVendorType() {
	t, err := ParseVendorType("it")
	s.Require().NoError(err)
	s.Equal(VendorTypeIT, t)

	t, err = ParseVendorType("Logistics")
	s.Require().NoError(err)
	s.Equal(VendorTypeLogistics, t)
}
