package constants

import "strings"

// AllowedExtensions holds the file extensions accepted as source documents.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// SpreadsheetExtensions holds the extensions the evaluator can read back.
var SpreadsheetExtensions = map[string]struct{}{
	"xlsx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether ext names a source document.
func IsPDFExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// IsSpreadsheetExt reports whether ext names a generated workbook.
func IsSpreadsheetExt(ext string) bool {
	_, ok := SpreadsheetExtensions[NormalizeExt(ext)]
	return ok
}
