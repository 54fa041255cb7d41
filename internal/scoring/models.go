package scoring

import (
	"time"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/vendors/models"
)

// Grade buckets the total risk score.
type Grade string

const (
	GradeLow    Grade = "Low"
	GradeMedium Grade = "Medium"
	GradeHigh   Grade = "High"
)

// Recommendation is the onboarding outcome.
type Recommendation string

const (
	RecommendationGo            Recommendation = "Go"
	RecommendationConditionalGo Recommendation = "ConditionalGo"
	RecommendationNoGo          Recommendation = "NoGo"
)

// Label is the human-facing spelling used in memos and pages.
func (r Recommendation) Label() string {
	switch r {
	case RecommendationGo:
		return "Go"
	case RecommendationNoGo:
		return "No-Go"
	default:
		return "Conditional Go"
	}
}

func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendationGo, RecommendationConditionalGo, RecommendationNoGo:
		return true
	}
	return false
}

// RedFlagCode identifies a disqualifying finding.
type RedFlagCode string

const (
	RedFlagNTSClosed   RedFlagCode = "NTS_CLOSED"
	RedFlagG2BSanction RedFlagCode = "G2B_SANCTION"
)

type RedFlag struct {
	Code        RedFlagCode `json:"code"`
	Description string      `json:"description"`
}

// Breakdown holds the three score components; the total is always their sum.
type Breakdown struct {
	Inherent   int `json:"inherent"`
	External   int `json:"external"`
	ControlGap int `json:"controlGap"`
}

func (b Breakdown) Total() int {
	return b.Inherent + b.External + b.ControlGap
}

// Evidence is the normalized output of all three providers.
type Evidence struct {
	NTS      providers.NTSNormalized
	OpenDART providers.OpenDARTNormalized
	G2B      providers.G2BNormalized
}

// Inputs is everything the engine reads.
type Inputs struct {
	Vendor   *models.Vendor
	Evidence Evidence
}

// Result is the engine output for one vendor.
type Result struct {
	ScoreTotal         int            `json:"score_total"`
	Grade              Grade          `json:"grade"`
	Recommendation     Recommendation `json:"recommendation"`
	RedFlags           []RedFlag      `json:"red_flags"`
	Breakdown          Breakdown      `json:"breakdown"`
	RecommendedActions []string       `json:"recommended_actions"`
	NextReviewMonths   int            `json:"next_review_months"`
}

// NextReviewAt applies the review interval in calendar months.
func (r Result) NextReviewAt(from time.Time) time.Time {
	return from.AddDate(0, r.NextReviewMonths, 0)
}
