package llm

import (
	"strings"
)

const extractionPromptHead = `You are an expert data extraction system. Your task is to extract ALL information from the following text and structure it into key-value pairs with optional comments.

CRITICAL REQUIREMENTS:
1. Extract 100% of the content - nothing should be missed
2. Identify logical key names (e.g., "First Name", "Date of Birth", "Current Salary")
3. Extract corresponding values
4. Add contextual information as comments where relevant
5. Preserve original wording from the text
6. Do NOT summarize or omit any information

Return the data as a JSON array with this structure:
[
  {"key": "First Name", "value": "Vijay", "comments": ""},
  {"key": "Last Name", "value": "Kumar", "comments": ""},
  {"key": "Date of Birth", "value": "15-Mar-89", "comments": ""},
  {"key": "Age", "value": "35 years", "comments": "As on year 2024"},
  ...
]

TEXT TO EXTRACT:
`

const extractionPromptTail = `

Return ONLY the JSON array, no additional text.`

// BuildExtractionPrompt embeds the full document text verbatim between the
// fixed instructions and the closing reminder.
func BuildExtractionPrompt(documentText string) string {
	var b strings.Builder
	b.Grow(len(extractionPromptHead) + len(documentText) + len(extractionPromptTail))
	b.WriteString(extractionPromptHead)
	b.WriteString(documentText)
	b.WriteString(extractionPromptTail)
	return b.String()
}
