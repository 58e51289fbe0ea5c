package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsheet/internal/table"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n[{\"key\":\"a\"}]\n```", `[{"key":"a"}]`},
		{"bare fence", "```\n[]\n```", "[]"},
		{"json fence wins", "noise ``` x ```json\n[1]\n```", "[1]"},
		{"prose around fence", "Here you go:\n```json\n[]\n```\nThanks", "[]"},
		{"unterminated fence", "```json\n[]", "[]"},
		{"no fence untouched", "  [] ", "  [] "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestParseRecords(t *testing.T) {
	in := "```json\n" + `[
	  {"key": "Name", "value": "Alice", "comments": ""},
	  {"key": "Age", "value": "30", "comments": "as of 2024"}
	]` + "\n```"

	recs, changed, err := ParseRecords(in)

	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, []table.Record{
		{Key: "Name", Value: "Alice"},
		{Key: "Age", Value: "30", Comment: "as of 2024"},
	}, recs)
}

func TestParseRecords_Repairs(t *testing.T) {
	in := `[
	  {"key": "Age", "value": 30},
	  {"key": "Active", "value": true, "comment": "flag"},
	  {"key": null, "value": "x", "comments": null}
	]`

	recs, changed, err := ParseRecords(in)

	require.NoError(t, err)
	assert.Equal(t, []table.Record{
		{Key: "Age", Value: "30"},
		{Key: "Active", Value: "true", Comment: "flag"},
		{Key: "", Value: "x"},
	}, recs)
	assert.Contains(t, changed, "[0].value(number)")
	assert.Contains(t, changed, "[1].comment->comments")
	assert.Contains(t, changed, "[2].key(null)")
}

func TestParseRecords_EmptyArray(t *testing.T) {
	recs, _, err := ParseRecords("[]")

	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParseRecords_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"prose", "Sorry, I cannot process this."},
		{"object not array", `{"key": "a", "value": "b"}`},
		{"missing value", `[{"key": "a"}]`},
		{"missing key", `[{"value": "a"}]`},
		{"non-object item", `["a", "b"]`},
		{"nested value", `[{"key": "a", "value": {"x": 1}}]`},
		{"truncated", `[{"key": "a", "value": "b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRecords(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestNormalizeRecordsJSON_KeepsExistingComments(t *testing.T) {
	doc, _, err := NormalizeRecordsJSON([]byte(`[{"key":"k","value":"v","comment":"old","comments":"new"}]`))
	require.NoError(t, err)

	item := doc.([]any)[0].(map[string]any)
	assert.Equal(t, "new", item["comments"])
	assert.NotContains(t, item, "comment")
}
