package errors

import (
	"strings"
	"unicode"
)

// ValidateConceptName validates a concept label before it is used in a
// backend lookup. It rejects names that could be used for path traversal
// or injection when interpolated into a request path.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateConceptName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConcept, "concept name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidConcept, "concept name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConcept, "concept name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidConcept, "concept name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateDocID validates a document identifier used in backend routes and
// cache keys. Document IDs are opaque tokens issued by the analysis backend;
// we only require that they are shell- and path-safe.
func ValidateDocID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocID, "document ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidDocID, "document ID too long (max 128 characters)")
	}

	for _, r := range id {
		ok := r == '-' || r == '_' || r == '.' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z')
		if !ok {
			return New(ErrCodeInvalidDocID, "document ID contains invalid character %q", r)
		}
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidDocID, "document ID contains path traversal sequence")
	}

	return nil
}
