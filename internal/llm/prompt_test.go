package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	doc := "Name: Alice.\n  Age: 30.  "

	p := BuildExtractionPrompt(doc)

	assert.True(t, strings.HasPrefix(p, "You are an expert data extraction system."))
	assert.Contains(t, p, "TEXT TO EXTRACT:\n"+doc+"\n\nReturn ONLY the JSON array")
	assert.True(t, strings.HasSuffix(p, "no additional text."))
}

func TestBuildExtractionPrompt_EmptyDocument(t *testing.T) {
	p := BuildExtractionPrompt("")

	assert.Equal(t, extractionPromptHead+extractionPromptTail, p)
}

func TestValidateRecords(t *testing.T) {
	valid := []any{map[string]any{"key": "a", "value": "b", "extra": 1.0}}
	wrongType := []any{map[string]any{"key": 1.0, "value": "b"}}

	assert.NoError(t, ValidateRecords(valid))
	assert.Error(t, ValidateRecords(wrongType))
	assert.Error(t, ValidateRecords("not an array"))
}
