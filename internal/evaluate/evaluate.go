package evaluate

import (
	"github.com/joseph-ayodele/docsheet/internal/table"
)

// Evaluate runs the five checks and sums them. Each check reads only t and
// doc, so their order does not matter. A nil table scores like an empty one.
func Evaluate(t *table.Table, doc string) ScoreReport {
	if t == nil {
		t = table.Materialize(nil)
	}

	completeness, nums, words, ratio := checkCompleteness(t, doc)
	r := ScoreReport{
		Max:            MaxTotal,
		Structure:      checkStructure(t),
		Completeness:   completeness,
		KeyQuality:     checkKeyQuality(t),
		ValueQuality:   checkValueQuality(t),
		Comments:       checkComments(t),
		NumberCoverage: nums,
		WordCoverage:   words,
		CharacterRatio: ratio,
	}
	for _, c := range r.Checks() {
		r.Total += c.Score
	}
	g := GradeFor(r.Total)
	r.Grade, r.Label, r.Feedback = g.Letter, g.Label, g.Feedback
	r.Recommendations = Recommendations(r.Total)
	return r
}

// Grade is the letter band for a total.
type Grade struct {
	Letter   string
	Label    string
	Feedback string
}

var grades = []struct {
	min int
	Grade
}{
	{90, Grade{"A+", "A+ Excellent!", "Outstanding extraction! Production ready."}},
	{80, Grade{"A", "A Very Good", "Great work! Minor improvements possible."}},
	{70, Grade{"B", "B Good", "Solid extraction. Some refinements needed."}},
	{60, Grade{"C", "C Satisfactory", "Basic requirements met. Needs improvement."}},
}

var gradeD = Grade{"D", "D Needs Work", "Significant improvements required."}

// GradeFor maps a 0..100 total onto its band.
func GradeFor(total int) Grade {
	for _, g := range grades {
		if total >= g.min {
			return g.Grade
		}
	}
	return gradeD
}

// Recommendations returns the advice lines for a total. Totals from 90 to 99
// get none.
func Recommendations(total int) []string {
	switch {
	case total >= MaxTotal:
		return []string{"Perfect score!"}
	case total < 70:
		return []string{
			"Review PDF text extraction - ensure all content captured",
			"Improve key naming to be more descriptive",
			"Add more contextual comments where relevant",
		}
	case total < 90:
		return []string{
			"Fine-tune key names for better clarity",
			"Consider adding more contextual information to comments",
		}
	default:
		return nil
	}
}
