// Package utils provides common utility functions.
package utils

import "strings"

// IsBlank reports whether str is empty or whitespace only.
func IsBlank(str string) bool {
	return strings.TrimSpace(str) == ""
}

// missingTokens are the spellings spreadsheet exports use for "no value".
var missingTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether str is blank or one of the conventional
// missing-value tokens such as "NaN", "N/A" or "NULL".
func IsMissing(str string) bool {
	trimmed := strings.TrimSpace(str)

	return trimmed == "" || missingTokens[trimmed]
}

// FirstPresent returns the first value that is not missing, or "".
func FirstPresent(values ...string) string {
	for _, v := range values {
		if !IsMissing(v) {
			return v
		}
	}

	return ""
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates string to max length.
func TruncateString(str string, maxLength int) string {
	if len(str) <= maxLength {
		return str
	}

	return str[:maxLength] + "..."
}
