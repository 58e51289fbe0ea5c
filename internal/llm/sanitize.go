package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docsheet/internal/table"
)

const (
	fenceJSON = "```json"
	fence     = "```"
)

// StripCodeFence unwraps a fenced completion. A "```json" fence wins over a
// bare "```" fence; text without any fence is returned unmodified.
func StripCodeFence(s string) string {
	if i := strings.Index(s, fenceJSON); i >= 0 {
		return strings.TrimSpace(untilFence(s[i+len(fenceJSON):]))
	}
	if i := strings.Index(s, fence); i >= 0 {
		return strings.TrimSpace(untilFence(s[i+len(fence):]))
	}
	return s
}

func untilFence(s string) string {
	if j := strings.Index(s, fence); j >= 0 {
		return s[:j]
	}
	return s
}

// NormalizeRecordsJSON decodes a completion and repairs what it can without
// changing meaning:
//   - renames "comment" -> "comments"
//   - coerces numeric and boolean key/value/comments to strings
//   - turns null key/value/comments into ""
//   - adds a missing "comments" as ""
//
// It returns the repaired document and the list of adjustments made.
// A missing key or value field is left alone so validation rejects it.
func NormalizeRecordsJSON(raw []byte) (any, []string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}
	items, ok := doc.([]any)
	if !ok {
		return doc, nil, nil
	}

	var changed []string
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if v, ok := m["comment"]; ok {
			if _, exists := m["comments"]; !exists {
				m["comments"] = v
			}
			delete(m, "comment")
			changed = append(changed, fmt.Sprintf("[%d].comment->comments", i))
		}
		for _, field := range []string{"key", "value", "comments"} {
			v, present := m[field]
			if !present {
				if field == "comments" {
					m[field] = ""
				}
				continue
			}
			switch t := v.(type) {
			case string:
			case nil:
				m[field] = ""
				changed = append(changed, fmt.Sprintf("[%d].%s(null)", i, field))
			case float64:
				m[field] = strconv.FormatFloat(t, 'f', -1, 64)
				changed = append(changed, fmt.Sprintf("[%d].%s(number)", i, field))
			case bool:
				m[field] = strconv.FormatBool(t)
				changed = append(changed, fmt.Sprintf("[%d].%s(bool)", i, field))
			}
		}
	}
	return items, changed, nil
}

// ParseRecords turns a raw completion into records: strip fences, decode,
// normalize, validate. Any failure means the whole completion is rejected.
func ParseRecords(completion string) ([]table.Record, []string, error) {
	body := StripCodeFence(completion)
	doc, changed, err := NormalizeRecordsJSON([]byte(body))
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateRecords(doc); err != nil {
		return nil, changed, err
	}
	items := doc.([]any)
	out := make([]table.Record, 0, len(items))
	for _, it := range items {
		m := it.(map[string]any)
		out = append(out, table.Record{
			Key:     m["key"].(string),
			Value:   m["value"].(string),
			Comment: m["comments"].(string),
		})
	}
	return out, changed, nil
}
