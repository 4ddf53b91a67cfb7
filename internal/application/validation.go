package application

import (
	"fmt"
	"strings"

	"framedata/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "windowID" -> "window ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"windowID":    "window ID",
		"nodeID":      "node ID",
		"url":         "URL",
		"contentType": "content type",
		"mode":        "proxy mode",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateProxyMode checks that mode names a known proxy mode
func ValidateProxyMode(fieldName, mode string) (domain.ProxyMode, error) {
	m, err := domain.ParseProxyMode(mode)
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected one of auto, global, disabled, got: %s", mode),
		}
	}
	return m, nil
}
