package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "menu-file", false},
		{"uuid style", "3f2a9c1e-77b4-4c11-9c56-0e2f8d1a6b42", false},
		{"dotted", "menu.file.recent", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"traversal", "../etc/passwd", true},
		{"slash", "menu/file", true},
		{"backslash", `menu\file`, true},
		{"null byte", "menu\x00file", true},
		{"control char", "menu\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidNodeID)
			}
		})
	}
}

func TestValidateSnapshotID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "demo", false},
		{"dashed", "nav-menus-v2", false},
		{"empty", "", true},
		{"hidden", ".hidden", true},
		{"traversal", "..", true},
		{"slash", "a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"dot", "svg", "png", "json"} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v, want nil", format, err)
		}
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("ValidateFormat(\"pdf\") should fail")
	}
	if err := ValidateFormat(""); err == nil {
		t.Error("ValidateFormat(\"\") should fail")
	}
}

func TestValidateLabel(t *testing.T) {
	if err := ValidateLabel("File > Recent"); err != nil {
		t.Errorf("ValidateLabel error = %v, want nil", err)
	}
	if err := ValidateLabel("multi\nline"); err != nil {
		t.Errorf("newlines should be allowed in labels, got %v", err)
	}
	if err := ValidateLabel("bad\x07bell"); err == nil {
		t.Error("control characters should be rejected")
	}
	if err := ValidateLabel(strings.Repeat("x", 501)); err == nil {
		t.Error("overlong label should be rejected")
	}
}
