package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier for safety and correctness.
// Node IDs end up in file names, store keys, and DOT output, so the rules
// are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNodeID, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node ID contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidNodeID, "node ID contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateSnapshotID validates a snapshot name used as a store key.
// The rules match ValidateNodeID since both end up as file basenames
// and keys in external backends.
func ValidateSnapshotID(id string) error {
	if err := ValidateNodeID(id); err != nil {
		return New(ErrCodeInvalidInput, "invalid snapshot ID: %s", UserMessage(err))
	}
	if strings.HasPrefix(id, ".") {
		return New(ErrCodeInvalidInput, "snapshot ID cannot start with a dot")
	}
	return nil
}

// ValidateFormat validates a render output format.
func ValidateFormat(format string) error {
	switch format {
	case "dot", "svg", "png", "json":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported format %q (expected dot, svg, png, or json)", format)
	}
}

// ValidateLabel validates a node display label.
// Labels are free-form but must not contain control characters, which
// would corrupt terminal and DOT output.
func ValidateLabel(label string) error {
	const maxLabelLength = 500
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}
