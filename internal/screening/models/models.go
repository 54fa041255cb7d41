package models

import (
	"encoding/json"
	"fmt"
	"time"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/scoring"
	vendormodels "vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
)

// ScreeningRun is one risk assessment of one vendor at one point in time.
// Runs are created once and never mutated.
type ScreeningRun struct {
	ID                 domain.ScreeningRunID  `json:"id"`
	VendorID           domain.VendorID        `json:"vendor_id"`
	RunBy              string                 `json:"run_by"`
	RunAt              time.Time              `json:"run_at"`
	Grade              scoring.Grade          `json:"overall_grade"`
	Recommendation     scoring.Recommendation `json:"recommendation"`
	ScoreTotal         int                    `json:"score_total"`
	Breakdown          scoring.Breakdown      `json:"score_breakdown"`
	RedFlags           []scoring.RedFlag      `json:"red_flags"`
	RecommendedActions []string               `json:"recommended_actions"`
	NextReviewMonths   int                    `json:"next_review_months"`
	NextReviewAt       time.Time              `json:"next_review_at"`
}

// NewScreeningRun records a scoring result. The next review date is derived
// from runAt in calendar months.
func NewScreeningRun(id domain.ScreeningRunID, vendorID domain.VendorID, runBy string, runAt time.Time, result scoring.Result) (*ScreeningRun, error) {
	if vendorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "screening run requires a vendor")
	}
	if runBy == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "screening run requires an actor")
	}
	if result.ScoreTotal != result.Breakdown.Total() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "score total must equal the breakdown sum")
	}
	redFlags := result.RedFlags
	if redFlags == nil {
		redFlags = []scoring.RedFlag{}
	}
	return &ScreeningRun{
		ID:                 id,
		VendorID:           vendorID,
		RunBy:              runBy,
		RunAt:              runAt,
		Grade:              result.Grade,
		Recommendation:     result.Recommendation,
		ScoreTotal:         result.ScoreTotal,
		Breakdown:          result.Breakdown,
		RedFlags:           redFlags,
		RecommendedActions: result.RecommendedActions,
		NextReviewMonths:   result.NextReviewMonths,
		NextReviewAt:       result.NextReviewAt(runAt),
	}, nil
}

// Result rebuilds the scoring result stored with the run.
func (r *ScreeningRun) Result() scoring.Result {
	return scoring.Result{
		ScoreTotal:         r.ScoreTotal,
		Grade:              r.Grade,
		Recommendation:     r.Recommendation,
		RedFlags:           r.RedFlags,
		Breakdown:          r.Breakdown,
		RecommendedActions: r.RecommendedActions,
		NextReviewMonths:   r.NextReviewMonths,
	}
}

// EvidenceSnapshot is one provider's result attached to a run. Snapshots are
// written in batches of exactly one per provider and never mutated.
type EvidenceSnapshot struct {
	ID           domain.SnapshotID     `json:"id"`
	RunID        domain.ScreeningRunID `json:"screening_run_id"`
	VendorID     domain.VendorID       `json:"vendor_id"`
	ProviderName providers.Name        `json:"provider_name"`
	Status       providers.Status      `json:"status"`
	Message      string                `json:"message,omitempty"`
	Normalized   json.RawMessage       `json:"normalized"`
	RawHash      string                `json:"raw_hash_sha256"`
	CheckedAt    time.Time             `json:"checked_at"`
}

// NewSnapshot captures res for the given run.
func NewSnapshot(id domain.SnapshotID, runID domain.ScreeningRunID, vendorID domain.VendorID, res providers.Result) (*EvidenceSnapshot, error) {
	if !res.Provider.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("unknown provider %q", res.Provider))
	}
	if res.Normalized == nil || res.Normalized.Provider() != res.Provider {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "snapshot payload does not match its provider")
	}
	payload, err := json.Marshal(res.Normalized)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", res.Provider, err)
	}
	return &EvidenceSnapshot{
		ID:           id,
		RunID:        runID,
		VendorID:     vendorID,
		ProviderName: res.Provider,
		Status:       res.Status,
		Message:      res.Message,
		Normalized:   payload,
		RawHash:      res.RawHash,
		CheckedAt:    res.CheckedAt,
	}, nil
}

// Payload decodes the stored normalized payload.
func (s *EvidenceSnapshot) Payload() (providers.Normalized, error) {
	return providers.DecodeNormalized(s.ProviderName, s.Normalized)
}

// OrderSnapshots returns snaps sorted into the fixed provider order.
// Snapshots for unknown providers are dropped.
func OrderSnapshots(snaps []*EvidenceSnapshot) []*EvidenceSnapshot {
	byName := make(map[providers.Name]*EvidenceSnapshot, len(snaps))
	for _, s := range snaps {
		byName[s.ProviderName] = s
	}
	out := make([]*EvidenceSnapshot, 0, len(providers.Order))
	for _, name := range providers.Order {
		if s, ok := byName[name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// RunDetail is a run with everything needed to render it.
type RunDetail struct {
	Run       *ScreeningRun
	Vendor    *vendormodels.Vendor
	Snapshots []*EvidenceSnapshot
}

// Outcome is what a screening invocation returns.
type Outcome struct {
	Run       *ScreeningRun
	Result    scoring.Result
	Snapshots []*EvidenceSnapshot
}
