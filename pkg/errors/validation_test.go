package errors

import (
	"strings"
	"testing"
)

func TestValidateConceptName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Photosynthesis", false},
		{"with space", "Cell Division", false},
		{"unicode", "Schrödinger Equation", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"control char", "bad\x01name", true},
		{"traversal", "../etc/passwd", true},
		{"double slash", "a//b", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConceptName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConceptName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConcept) {
				t.Errorf("expected INVALID_CONCEPT code, got %q", GetCode(err))
			}
		})
	}
}

func TestValidateDocID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid style", "550e8400-e29b-41d4-a716-446655440000", false},
		{"alphanumeric", "doc_42.v1", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 129), true},
		{"slash", "a/b", true},
		{"space", "a b", true},
		{"traversal dots survive charset", "a..b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
