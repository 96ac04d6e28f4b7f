package application

import (
	"fmt"
	"strings"

	"videovault/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "targetDir" -> "target directory")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":        "ID",
		"ids":       "IDs",
		"undoID":    "undo ID",
		"newName":   "new name",
		"targetDir": "target directory",
		"query":     "query",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateIDs checks that ids is non-empty and contains no blank entries
func ValidateIDs(fieldName string, ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("at least one %s is required", formatFieldName("id")),
		}
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("empty ID at position %d", i),
			}
		}
	}
	return nil
}

// ValidateName checks that a new base name is usable as a filename
func ValidateName(fieldName, name string) error {
	if err := ValidateRequired(fieldName, name); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "." || trimmed == ".." {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid name: %s", name),
		}
	}
	return nil
}

// ValidateTargetDir rejects directories that escape the library root
func ValidateTargetDir(fieldName, dir string) error {
	for _, part := range strings.Split(strings.ReplaceAll(dir, "\\", "/"), "/") {
		if part == ".." {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s must stay inside the library: %s", formatFieldName(fieldName), dir),
			}
		}
	}
	return nil
}

// ValidateBatchOptions checks the numbering options of a batch rename
func ValidateBatchOptions(opts domain.BatchRenameOptions) error {
	if opts.StartIndex < 0 {
		return &ValidationError{Field: "startIndex", Message: "start index must not be negative"}
	}
	if opts.PadDigits < 0 || opts.PadDigits > 12 {
		return &ValidationError{Field: "padDigits", Message: "pad digits must be between 0 and 12"}
	}
	switch opts.Transform {
	case "", domain.TransformNone, domain.TransformLower, domain.TransformUpper, domain.TransformTitle:
	default:
		return &ValidationError{Field: "transform", Message: fmt.Sprintf("unknown transform: %s", opts.Transform)}
	}
	if opts.ApplyTo != "" && !opts.ApplyTo.Valid() {
		return &ValidationError{Field: "applyTo", Message: fmt.Sprintf("unknown mode: %s", opts.ApplyTo)}
	}
	return nil
}
