package models

import (
	"strings"
)

// Accepted puzzle sizes (centimetres per side)
var allowedSizes = []string{"100", "150"}

// Accepted upload formats
var allowedImageFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// IsAllowedSize reports whether size is one of the offered puzzle sizes
func IsAllowedSize(size string) bool {
	for _, allowed := range allowedSizes {
		if size == allowed {
			return true
		}
	}
	return false
}

// IsAllowedImageFormat reports whether format (case-insensitive) is accepted
func IsAllowedImageFormat(format string) bool {
	return allowedImageFormats[strings.ToLower(format)]
}

// OptionalString trims s and returns nil when nothing is left
func OptionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizePuzzleCode trims and uppercases a puzzle code; blank codes are nil
func NormalizePuzzleCode(code string) *string {
	return OptionalString(strings.ToUpper(code))
}

// IsBlank reports whether v is unset or renders as whitespace only
func IsBlank(v any) bool {
	return !Truthy(v) || strings.TrimSpace(Stringify(v)) == ""
}
