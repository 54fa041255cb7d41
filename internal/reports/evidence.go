// Package reports renders the downloadable artifacts of a screening run: the
// JSON evidence pack and the PDF memo.
package reports

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/scoring"
	screeningmodels "vendorscreen/internal/screening/models"
	"vendorscreen/pkg/domain"
)

// Disclaimers are attached to every evidence pack.
var Disclaimers = []string{
	"This evidence pack is built from summary data returned by the provider APIs; full upstream responses are not stored.",
	"External data may change over time depending on when it was queried.",
	"The recommendation is not an approval or guarantee.",
}

type VendorBlock struct {
	ID                       domain.VendorID     `json:"id"`
	Name                     string              `json:"vendor_name"`
	BizRegNo                 domain.BizRegNo     `json:"biz_reg_no"`
	Type                     string              `json:"vendor_type"`
	ExpectedAnnualSpend      decimal.NullDecimal `json:"expected_annual_spend"`
	AdvancePayment           bool                `json:"advance_payment"`
	PIIAccessLevel           string              `json:"pii_access_level"`
	PublicProcurementRelated bool                `json:"public_procurement_related"`
}

type RunBlock struct {
	ID             domain.ScreeningRunID  `json:"id"`
	RunAt          time.Time              `json:"run_at"`
	Grade          scoring.Grade          `json:"overall_grade"`
	Recommendation scoring.Recommendation `json:"recommendation"`
	ScoreTotal     int                    `json:"score_total"`
	Breakdown      scoring.Breakdown      `json:"score_breakdown"`
	RedFlags       []scoring.RedFlag      `json:"red_flags"`
	NextReviewAt   time.Time              `json:"next_review_at"`
}

type SnapshotBlock struct {
	ProviderName providers.Name   `json:"provider_name"`
	Status       providers.Status `json:"status"`
	Message      string           `json:"message,omitempty"`
	Normalized   json.RawMessage  `json:"normalized"`
	RawHash      string           `json:"raw_hash_sha256"`
	CheckedAt    time.Time        `json:"checked_at"`
}

// EvidencePack is the JSON document offered for download.
type EvidencePack struct {
	Vendor      VendorBlock     `json:"vendor"`
	Run         RunBlock        `json:"screening_run"`
	Snapshots   []SnapshotBlock `json:"evidence_snapshots"`
	Disclaimers []string        `json:"disclaimers"`
}

// BuildEvidencePack assembles the pack for a run. Snapshots are emitted in
// provider order.
func BuildEvidencePack(d *screeningmodels.RunDetail) EvidencePack {
	v, run := d.Vendor, d.Run
	pack := EvidencePack{
		Vendor: VendorBlock{
			ID:                       v.ID,
			Name:                     v.Name,
			BizRegNo:                 v.BizRegNo,
			Type:                     string(v.Type),
			ExpectedAnnualSpend:      v.ExpectedAnnualSpend,
			AdvancePayment:           v.AdvancePayment,
			PIIAccessLevel:           string(v.PIIAccessLevel),
			PublicProcurementRelated: v.PublicProcurementRelated,
		},
		Run: RunBlock{
			ID:             run.ID,
			RunAt:          run.RunAt,
			Grade:          run.Grade,
			Recommendation: run.Recommendation,
			ScoreTotal:     run.ScoreTotal,
			Breakdown:      run.Breakdown,
			RedFlags:       run.RedFlags,
			NextReviewAt:   run.NextReviewAt,
		},
		Snapshots:   []SnapshotBlock{},
		Disclaimers: Disclaimers,
	}
	if pack.Run.RedFlags == nil {
		pack.Run.RedFlags = []scoring.RedFlag{}
	}
	for _, s := range screeningmodels.OrderSnapshots(d.Snapshots) {
		pack.Snapshots = append(pack.Snapshots, SnapshotBlock{
			ProviderName: s.ProviderName,
			Status:       s.Status,
			Message:      s.Message,
			Normalized:   s.Normalized,
			RawHash:      s.RawHash,
			CheckedAt:    s.CheckedAt,
		})
	}
	return pack
}

func EvidenceFilename(id domain.ScreeningRunID) string {
	return fmt.Sprintf("evidence-%s.json", id)
}

func MemoFilename(id domain.ScreeningRunID) string {
	return fmt.Sprintf("memo-%s.pdf", id)
}
