package domain

import (
	"regexp"
	"strings"

	dErrors "vendorscreen/pkg/domain-errors"
)

var bizRegNoPattern = regexp.MustCompile(`^\d{10}$`)

// BizRegNo is a Korean business registration number: exactly ten ASCII digits.
type BizRegNo string

// ParseBizRegNo trims surrounding whitespace and enforces the ten-digit format.
func ParseBizRegNo(s string) (BizRegNo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "biz_reg_no is required")
	}
	if !bizRegNoPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeValidation, "biz_reg_no must be exactly 10 digits")
	}
	return BizRegNo(s), nil
}

func (b BizRegNo) String() string { return string(b) }
