package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// CleanText strips NUL bytes and surrounding whitespace from a parsed field.
// The parsing service occasionally leaks NULs from PDF extraction.
func CleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

// CleanTextSlice applies CleanText to every element.
func CleanTextSlice(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, CleanText(s))
	}
	return out
}

// StringOrNil returns nil for an empty string, otherwise a pointer to it.
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetStringOrDefault returns the value if not empty, otherwise returns the default
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
