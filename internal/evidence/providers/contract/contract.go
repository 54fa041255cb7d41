// Package contract provides shared assertions every provider normalizer must
// satisfy regardless of upstream behaviour.
package contract

import (
	"context"
	"testing"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/pkg/domain"
)

// ContractTest defines a test case for normalizer contract validation
type ContractTest struct {
	Name           string
	Normalizer     providers.Normalizer
	BizRegNo       domain.BizRegNo
	ExpectedStatus providers.Status
	ValidateFunc   func(t *testing.T, result providers.Result)
}

// ContractSuite is a collection of contract tests for one provider
type ContractSuite struct {
	Provider providers.Name
	Tests    []ContractTest
}

// Run executes all contract tests in the suite
func (s *ContractSuite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			result := test.Normalizer.Fetch(context.Background(), test.BizRegNo)

			if result.Provider != s.Provider {
				t.Errorf("expected provider %s, got %s", s.Provider, result.Provider)
			}
			if result.Normalized == nil {
				t.Fatal("normalized payload not set")
			}
			if result.Normalized.Provider() != s.Provider {
				t.Errorf("payload belongs to %s, expected %s", result.Normalized.Provider(), s.Provider)
			}
			if result.Status != test.ExpectedStatus {
				t.Errorf("expected status %s, got %s (message %q)", test.ExpectedStatus, result.Status, result.Message)
			}
			if len(result.RawHash) != 64 {
				t.Errorf("raw hash %q is not a hex sha256", result.RawHash)
			}
			if result.CheckedAt.IsZero() {
				t.Error("CheckedAt not set")
			}
			if !result.CheckedAt.Equal(result.Normalized.CheckedAt()) {
				t.Errorf("result checked_at %s differs from payload %s", result.CheckedAt, result.Normalized.CheckedAt())
			}

			if test.ValidateFunc != nil {
				test.ValidateFunc(t, result)
			}
		})
	}
}
