package evaluate

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

const (
	rule             = "======================================================================"
	ReportTimeLayout = "2006-01-02 15:04:05"
)

// RenderText writes the per-category breakdown a console user sees.
func RenderText(w io.Writer, r ScoreReport) error {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "EVALUATION REPORT")
	fmt.Fprintln(&b, rule)
	for i, c := range r.Checks() {
		fmt.Fprintf(&b, "\n%d. %s: %d/%d\n", i+1, c.Name, c.Score, c.Max)
		for _, d := range c.Details {
			fmt.Fprintf(&b, "   - %s\n", d)
		}
	}
	fmt.Fprintf(&b, "\nTotal Score: %d/%d\n", r.Total, r.Max)
	fmt.Fprintf(&b, "Grade: %s\n", r.Label)
	fmt.Fprintf(&b, "Feedback: %s\n", r.Feedback)
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(&b, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "   - %s\n", rec)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderReportFile is the plain-text report saved next to the outputs.
func RenderReportFile(r ScoreReport, pdfName, xlsxName string, at time.Time) string {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "STANDALONE EVALUATION REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Input PDF: %s\n", pdfName)
	fmt.Fprintf(&b, "Generated Excel: %s\n\n", xlsxName)
	fmt.Fprintf(&b, "Total Score: %d/%d\n", r.Total, r.Max)
	fmt.Fprintf(&b, "Grade: %s\n", r.Label)
	fmt.Fprintf(&b, "Feedback: %s\n\n", r.Feedback)
	fmt.Fprintf(&b, "Evaluation Date: %s\n", at.Format(ReportTimeLayout))
	return b.String()
}

// WriteReportFile saves RenderReportFile output to path, replacing any file there.
func WriteReportFile(path string, r ScoreReport, pdfName, xlsxName string, at time.Time) error {
	if err := os.WriteFile(path, []byte(RenderReportFile(r, pdfName, xlsxName, at)), 0o644); err != nil {
		return common.NewKindError(common.KindFileIO, "write report "+path, err)
	}
	return nil
}
