package scoring

import (
	"github.com/shopspring/decimal"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/vendors/models"
)

const (
	highGradeThreshold   = 60
	mediumGradeThreshold = 30

	// MaxActions caps the recommended action list.
	MaxActions = 6
)

var (
	highSpend = decimal.NewFromInt(200_000_000)
	midSpend  = decimal.NewFromInt(50_000_000)
)

var vendorTypeWeights = map[models.VendorType]int{
	models.VendorTypeIT:        10,
	models.VendorTypeAgency:    8,
	models.VendorTypeLogistics: 6,
	models.VendorTypeSupplier:  5,
	models.VendorTypeOther:     6,
}

var piiWeights = map[models.PIIAccessLevel]int{
	models.PIIAccessNone:    0,
	models.PIIAccessLimited: 8,
	models.PIIAccessHigh:    15,
}

// Action texts in insertion order.
const (
	ActionPeriodicMonitoring = "Monitor according to the periodic review schedule"
	ActionVerifyMasterData   = "Verify vendor master data and business registration are current"
	ActionRescreenOnChange   = "Re-screen immediately on material changes"
	ActionAuditRights        = "Include audit rights and immediate termination clauses in the contract"
	ActionDataProcessing     = "Add data processing terms and restrict sub-processing for outsourced personal data"
	ActionAdvancePaymentCap  = "Cap advance payments and consider a performance bond or escrow"
	ActionSanctionEvidence   = "Request additional sanction evidence (e.g. non-sanction certificate)"
	ActionPIIAccessReview    = "Review data minimization and access controls"
	ActionExecutiveApproval  = "Requires executive approval"
)

// Score maps vendor attributes and provider evidence to a risk result.
// This is pure domain logic - no I/O, no side effects.
func Score(in Inputs) Result {
	var redFlags []RedFlag
	breakdown := Breakdown{
		Inherent:   scoreInherent(in.Vendor),
		External:   scoreExternal(in, &redFlags),
		ControlGap: scoreControlGap(in.Vendor),
	}

	total := breakdown.Total()
	grade := gradeFor(total)
	actions, months := recommendedControls(grade, in)

	if redFlags == nil {
		redFlags = []RedFlag{}
	}
	return Result{
		ScoreTotal:         total,
		Grade:              grade,
		Recommendation:     recommend(grade, redFlags),
		RedFlags:           redFlags,
		Breakdown:          breakdown,
		RecommendedActions: actions,
		NextReviewMonths:   months,
	}
}

func scoreInherent(v *models.Vendor) int {
	score := vendorTypeWeights[v.Type] + piiWeights[v.PIIAccessLevel]
	if v.AdvancePayment {
		score += 8
	}
	if v.PublicProcurementRelated {
		score += 6
	}
	return score + spendTier(v.ExpectedAnnualSpend)
}

func spendTier(spend decimal.NullDecimal) int {
	switch {
	case !spend.Valid:
		return 2
	case spend.Decimal.GreaterThan(highSpend):
		return 6
	case spend.Decimal.GreaterThanOrEqual(midSpend):
		return 3
	default:
		return 1
	}
}

// scoreExternal appends red flags in encounter order: NTS first, then G2B.
func scoreExternal(in Inputs, redFlags *[]RedFlag) int {
	score := 0

	switch in.Evidence.NTS.Status {
	case providers.BusinessClosed:
		score += 30
		*redFlags = append(*redFlags, RedFlag{Code: RedFlagNTSClosed, Description: "NTS reports the business as closed"})
	case providers.BusinessSuspended:
		score += 20
	case providers.BusinessUnknown:
		score += 10
	}

	g2b := in.Evidence.G2B
	switch {
	case g2b.SanctionValid == providers.True:
		score += 30
		*redFlags = append(*redFlags, RedFlag{Code: RedFlagG2BSanction, Description: "Active G2B procurement sanction"})
	case g2b.HasSanction == providers.True:
		score += 20
	case g2b.HasSanction == providers.Unknown:
		if in.Vendor.PublicProcurementRelated {
			score += 8
		} else {
			score += 2
		}
	}

	if in.Evidence.OpenDART.IsListed == providers.ListingNotApplicable {
		score += 5
	}
	return score
}

func scoreControlGap(v *models.Vendor) int {
	score := 0
	switch {
	case v.AdvancePayment && v.ExpectedAnnualSpend.Valid && v.ExpectedAnnualSpend.Decimal.GreaterThan(midSpend):
		score += 6
	case v.AdvancePayment:
		score += 2
	}
	if v.PIIAccessLevel == models.PIIAccessHigh {
		score += 4
	}
	return score
}

func gradeFor(total int) Grade {
	switch {
	case total >= highGradeThreshold:
		return GradeHigh
	case total >= mediumGradeThreshold:
		return GradeMedium
	default:
		return GradeLow
	}
}

// recommend: any red flag forces NoGo regardless of grade.
func recommend(grade Grade, redFlags []RedFlag) Recommendation {
	if len(redFlags) > 0 {
		return RecommendationNoGo
	}
	if grade == GradeLow {
		return RecommendationGo
	}
	return RecommendationConditionalGo
}

func recommendedControls(grade Grade, in Inputs) ([]string, int) {
	actions := []string{ActionPeriodicMonitoring, ActionVerifyMasterData, ActionRescreenOnChange}

	months := 12
	switch grade {
	case GradeMedium:
		months = 6
	case GradeHigh:
		months = 3
	}

	if grade != GradeLow {
		actions = append(actions, ActionAuditRights, ActionDataProcessing, ActionAdvancePaymentCap)
	}
	if in.Vendor.PublicProcurementRelated || in.Evidence.G2B.HasSanction == providers.Unknown {
		actions = append(actions, ActionSanctionEvidence)
	}
	if in.Vendor.PIIAccessLevel != models.PIIAccessNone {
		actions = append(actions, ActionPIIAccessReview)
	}
	if grade == GradeHigh {
		actions = append(actions, ActionExecutiveApproval)
	}

	if len(actions) > MaxActions {
		actions = actions[:MaxActions]
	}
	return actions, months
}
