package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/scoring"
	screeningmodels "vendorscreen/internal/screening/models"
)

const memoTitle = "Vendor Screening Result (Recommendation)"

// Rescore recomputes the scoring result from the stored snapshots. A missing
// or undecodable snapshot contributes its provider's fallback dated at the
// run time.
func Rescore(d *screeningmodels.RunDetail) scoring.Result {
	payloads := make([]providers.Normalized, 0, len(d.Snapshots))
	for _, s := range d.Snapshots {
		if p, err := s.Payload(); err == nil {
			payloads = append(payloads, p)
		}
	}
	return scoring.Score(scoring.Inputs{
		Vendor:   d.Vendor,
		Evidence: scoring.EvidenceFrom(d.Run.RunAt, payloads...),
	})
}

// MemoLines is the memo body, one entry per printed line.
func MemoLines(d *screeningmodels.RunDetail, res scoring.Result) []string {
	redFlags := "None"
	if len(res.RedFlags) > 0 {
		descs := make([]string, 0, len(res.RedFlags))
		for _, f := range res.RedFlags {
			descs = append(descs, f.Description)
		}
		redFlags = strings.Join(descs, ", ")
	}

	lines := []string{
		fmt.Sprintf("1) Purpose/scope: summary of the onboarding or periodic review of %s", d.Vendor.Name),
		"2) Automatic lookup summary:",
		fmt.Sprintf("   - Total score: %d", res.ScoreTotal),
		fmt.Sprintf("   - Risk grade: %s", res.Grade),
		fmt.Sprintf("   - Recommendation: %s", res.Recommendation.Label()),
		"3) Risk grade and basis:",
		fmt.Sprintf("   - Red flags: %s", redFlags),
		"4) Recommended actions:",
	}
	for _, a := range res.RecommendedActions {
		lines = append(lines, "   - "+a)
	}
	return append(lines,
		"5) Limitations and disclaimer:",
		"   - This document is a recommendation, not an approval or guarantee",
		"   - Results reflect the lookup time and may contain data gaps",
		fmt.Sprintf("   - Lookup time: %s", d.Run.RunAt.UTC().Format(time.RFC3339)),
	)
}

// RenderMemo writes the memo PDF for a run to w.
func RenderMemo(w io.Writer, d *screeningmodels.RunDetail) error {
	res := Rescore(d)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(memoTitle, false)
	pdf.SetCreationDate(d.Run.RunAt)
	pdf.SetModificationDate(d.Run.RunAt)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(26, 26, 26)
	pdf.CellFormat(0, 12, memoTitle, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(51, 51, 51)
	for _, line := range MemoLines(d, res) {
		pdf.MultiCell(0, 6.5, tr(line), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render memo: %w", err)
	}
	return pdf.Output(w)
}
