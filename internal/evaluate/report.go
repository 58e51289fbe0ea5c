// Package evaluate scores an extracted table against the document it came
// from. Nothing here does I/O except WriteReportFile; the same inputs always
// give the same report.
package evaluate

// Max points per check. They sum to MaxTotal.
const (
	MaxStructure    = 20
	MaxCompleteness = 30
	MaxKeyQuality   = 25
	MaxValueQuality = 15
	MaxComments     = 10
	MaxTotal        = MaxStructure + MaxCompleteness + MaxKeyQuality + MaxValueQuality + MaxComments
)

// Check is the outcome of one scoring category.
type Check struct {
	Name    string
	Score   int
	Max     int
	Details []string
}

// Passed reports whether the check earned every point.
func (c Check) Passed() bool { return c.Score == c.Max }

// Coverage is how many source tokens of one family were found in the output.
type Coverage struct {
	Total   int
	Found   int
	Percent float64
}

// ScoreReport is the full result of the standard five-check scheme.
type ScoreReport struct {
	Total    int
	Max      int
	Grade    string // "A+" .. "D"
	Label    string // "A+ Excellent!" .. "D Needs Work"
	Feedback string

	Structure    Check
	Completeness Check
	KeyQuality   Check
	ValueQuality Check
	Comments     Check

	NumberCoverage Coverage
	WordCoverage   Coverage
	// CharacterRatio is output characters over document characters, in
	// percent. It is informational and never scored.
	CharacterRatio float64

	Recommendations []string
}

// Checks returns the five categories in report order.
func (r ScoreReport) Checks() []Check {
	return []Check{r.Structure, r.Completeness, r.KeyQuality, r.ValueQuality, r.Comments}
}
