package evaluate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

var (
	numberToken = regexp.MustCompile(`\b\d+[\d.,]*\b`)
	wordToken   = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// keyVocabulary marks a key as meaningful when any term is a substring of it.
var keyVocabulary = []string{
	"name", "date", "birth", "age", "salary", "organization",
	"designation", "role", "education", "degree", "college",
	"certification", "skill", "proficiency", "school", "year",
	"joining", "current", "previous", "score", "grade",
}

// checkStructure looks only at shape: header order, numbering and missing
// keys or values.
func checkStructure(t *table.Table) Check {
	c := Check{Name: "Structure Validation", Max: MaxStructure}

	if slices.Equal(t.Columns, constants.Columns) {
		c.Score += 5
		c.Details = append(c.Details, "Columns correct: "+strings.Join(constants.Columns, ", "))
	} else {
		c.Details = append(c.Details, fmt.Sprintf("Columns %q, expected %q", t.Columns, constants.Columns))
	}

	if sequential(t.Numbers()) {
		c.Score += 5
		c.Details = append(c.Details, fmt.Sprintf("Row numbers sequential (1 to %d)", t.Len()))
	} else {
		c.Details = append(c.Details, "Row numbering incorrect")
	}

	if n := countEqual(t.Keys(), ""); n == 0 {
		c.Score += 5
		c.Details = append(c.Details, "No missing keys")
	} else {
		c.Details = append(c.Details, fmt.Sprintf("Found %d missing keys", n))
	}

	if n := countEqual(t.Values(), ""); n == 0 {
		c.Score += 5
		c.Details = append(c.Details, "No missing values")
	} else {
		c.Details = append(c.Details, fmt.Sprintf("Found %d missing values", n))
	}
	return c
}

// checkCompleteness counts how many numeric and capitalized tokens of the
// document occur as plain substrings of the output text. A short token can
// match inside an unrelated longer one; that is accepted.
func checkCompleteness(t *table.Table, doc string) (Check, Coverage, Coverage, float64) {
	c := Check{Name: "Data Completeness", Max: MaxCompleteness}
	out := outputText(t)

	nums := coverage(numberToken.FindAllString(doc, -1), out)
	words := coverage(wordToken.FindAllString(doc, -1), out)

	c.Score += ladder(nums.Percent, []step{{90, 15}, {75, 12}}, 8)
	c.Details = append(c.Details, fmt.Sprintf("Number coverage: %d/%d (%.1f%%)", nums.Found, nums.Total, nums.Percent))

	c.Score += ladder(words.Percent, []step{{85, 15}, {70, 12}}, 8)
	c.Details = append(c.Details, fmt.Sprintf("Named entity coverage: %d/%d (%.1f%%)", words.Found, words.Total, words.Percent))

	docChars := utf8.RuneCountInString(doc)
	ratio := 0.0
	if docChars > 0 {
		ratio = float64(utf8.RuneCountInString(out)) / float64(docChars) * 100
	}
	c.Details = append(c.Details, fmt.Sprintf("Character coverage: %.1f%%", ratio))
	return c, nums, words, ratio
}

func checkKeyQuality(t *table.Table) Check {
	c := Check{Name: "Key Quality", Max: MaxKeyQuality}
	keys := t.Keys()

	meaningful := 0
	for _, k := range keys {
		if isMeaningfulKey(k, keyVocabulary) {
			meaningful++
		}
	}
	mp := percent(meaningful, len(keys), 0)
	c.Score += ladder(mp, []step{{80, 10}, {60, 7}}, 4)
	c.Details = append(c.Details, fmt.Sprintf("Meaningful keys: %d/%d (%.1f%%)", meaningful, len(keys), mp))

	if dup := duplicateRows(keys); dup == 0 {
		c.Score += 5
		c.Details = append(c.Details, "No duplicate keys")
	} else {
		c.Score += 2
		c.Details = append(c.Details, fmt.Sprintf("Found %d rows with duplicate keys", dup))
	}

	formatted := 0
	for _, k := range keys {
		if r, _ := utf8.DecodeRuneInString(k); k != "" && unicode.IsUpper(r) {
			formatted++
		}
	}
	fp := percent(formatted, len(keys), 0)
	c.Score += ladder(fp, []step{{90, 5}, {70, 3}}, 1)
	c.Details = append(c.Details, fmt.Sprintf("Proper formatting: %d/%d (%.1f%%)", formatted, len(keys), fp))

	avg := averageRunes(keys)
	switch {
	case avg >= 15 && avg <= 40:
		c.Score += 5
	case avg >= 10 && avg <= 50:
		c.Score += 3
	default:
		c.Score += 1
	}
	c.Details = append(c.Details, fmt.Sprintf("Average key length: %.1f characters", avg))
	return c
}

func checkValueQuality(t *table.Table) Check {
	c := Check{Name: "Value Quality", Max: MaxValueQuality}
	values := t.Values()

	empty := 0
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			empty++
		}
	}
	if empty == 0 {
		c.Score += 5
		c.Details = append(c.Details, "No empty values")
	} else {
		c.Score += 2
		c.Details = append(c.Details, fmt.Sprintf("Found %d empty values", empty))
	}

	unique := make(map[string]struct{}, len(values))
	for _, v := range values {
		unique[v] = struct{}{}
	}
	dp := percent(len(unique), len(values), 0)
	c.Score += ladder(dp, []step{{85, 5}, {70, 3}}, 1)
	c.Details = append(c.Details, fmt.Sprintf("Value diversity: %d/%d unique (%.1f%%)", len(unique), len(values), dp))

	avg := averageRunes(values)
	if avg >= 5 {
		c.Score += 5
	} else {
		c.Score += 2
	}
	c.Details = append(c.Details, fmt.Sprintf("Average value length: %.1f characters", avg))
	return c
}

func checkComments(t *table.Table) Check {
	c := Check{Name: "Comments Usage", Max: MaxComments}
	n := t.CommentCount()
	cp := percent(n, t.Len(), 0)
	c.Score += ladder(cp, []step{{30, 10}, {15, 7}, {5, 4}}, 2)
	c.Details = append(c.Details, fmt.Sprintf("Comments usage: %d/%d rows (%.1f%%)", n, t.Len(), cp))
	return c
}

type step struct {
	min    float64
	points int
}

// ladder returns the points of the first step whose threshold p reaches.
func ladder(p float64, steps []step, floor int) int {
	for _, s := range steps {
		if p >= s.min {
			return s.points
		}
	}
	return floor
}

// percent is n/total*100, or empty when total is zero.
func percent(n, total int, empty float64) float64 {
	if total == 0 {
		return empty
	}
	return float64(n) / float64(total) * 100
}

func coverage(tokens []string, out string) Coverage {
	found := 0
	for _, tok := range tokens {
		if strings.Contains(out, tok) {
			found++
		}
	}
	return Coverage{Total: len(tokens), Found: found, Percent: percent(found, len(tokens), 100)}
}

// outputText joins every value and comment, each followed by a space.
func outputText(t *table.Table) string {
	var b strings.Builder
	for _, r := range rows(t) {
		b.WriteString(r.Value)
		b.WriteByte(' ')
		b.WriteString(r.Comment)
		b.WriteByte(' ')
	}
	return b.String()
}

func isMeaningfulKey(key string, vocab []string) bool {
	k := strings.ToLower(key)
	for _, term := range vocab {
		if strings.Contains(k, term) {
			return true
		}
	}
	return false
}

// sequential reports whether nums is exactly 1..len(nums).
func sequential(nums []int) bool {
	for i, n := range nums {
		if n != i+1 {
			return false
		}
	}
	return true
}

// duplicateRows counts rows whose key appears more than once.
func duplicateRows(keys []string) int {
	freq := make(map[string]int, len(keys))
	for _, k := range keys {
		freq[k]++
	}
	n := 0
	for _, k := range keys {
		if freq[k] > 1 {
			n++
		}
	}
	return n
}

func countEqual(ss []string, target string) int {
	n := 0
	for _, s := range ss {
		if s == target {
			n++
		}
	}
	return n
}

func averageRunes(ss []string) float64 {
	if len(ss) == 0 {
		return 0
	}
	total := 0
	for _, s := range ss {
		total += utf8.RuneCountInString(s)
	}
	return float64(total) / float64(len(ss))
}

func rows(t *table.Table) []table.Row {
	if t == nil {
		return nil
	}
	return t.Rows
}
