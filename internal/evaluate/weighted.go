package evaluate

import (
	"math"

	"github.com/joseph-ayodele/docsheet/internal/table"
)

// Weights of the three-factor scheme.
const (
	WeightCompleteness = 0.5
	WeightStructure    = 0.3
	WeightKeys         = 0.2
)

// weightedVocabulary is the shorter term list the weighted scheme matches keys against.
var weightedVocabulary = []string{
	"name", "date", "birth", "age", "salary", "education",
	"certification", "skill", "organization", "designation",
}

// WeightedReport is the alternate percentage-based scheme. It is not a
// rescaling of ScoreReport and will disagree with it on the same input.
type WeightedReport struct {
	Completeness float64 // mean of number and word coverage
	Structure    float64 // 100 minus penalties, floored at 0
	Keys         float64 // meaningful key percentage
	Overall      float64 // rounded to one decimal
	Grade        string  // "A+" | "A" | "B" | "C"
}

func EvaluateWeighted(t *table.Table, doc string) WeightedReport {
	out := outputText(t)
	nums := coverage(numberToken.FindAllString(doc, -1), out)
	words := coverage(wordToken.FindAllString(doc, -1), out)

	var r WeightedReport
	r.Completeness = (nums.Percent + words.Percent) / 2

	structure := 100.0
	if countEqual(t.Keys(), "") > 0 {
		structure -= 20
	}
	if countEqual(t.Values(), "") > 0 {
		structure -= 20
	}
	if duplicateRows(t.Keys()) > 0 {
		structure -= 10
	}
	r.Structure = math.Max(0, structure)

	meaningful := 0
	keys := t.Keys()
	for _, k := range keys {
		if isMeaningfulKey(k, weightedVocabulary) {
			meaningful++
		}
	}
	r.Keys = percent(meaningful, len(keys), 0)

	raw := r.Completeness*WeightCompleteness + r.Structure*WeightStructure + r.Keys*WeightKeys
	r.Overall = math.Round(raw*10) / 10

	switch {
	case r.Overall >= 90:
		r.Grade = "A+"
	case r.Overall >= 80:
		r.Grade = "A"
	case r.Overall >= 70:
		r.Grade = "B"
	default:
		r.Grade = "C"
	}
	return r
}
