package errors

import (
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid doc.toml", "doc.toml", false},
		{"valid uuid", "3f9a2c44-8a1e-4f07-9c38-0f5f6f1f2a90", false},

		{"empty", "", true},
		{"with path /", "path/to/file", true},
		{"with path \\", "path\\to\\file", true},
		{"traversal", "../escape", true},
		{"hidden file", ".hidden", true},
		{"hidden file long", ".secret.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidPath {
				t.Errorf("ValidateFilename(%q) code = %v, want INVALID_PATH", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "pages/cover.png", false},
		{"valid nested", "assets/scans/page-01.png", false},
		{"valid simple", "cover.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secrets", true},
		{"traversal nested", "pages/../../secrets", true},
		{"backslash", "pages\\cover.png", true},
		{"null byte", "pages\x00cover.png", true},
		{"control char", "pages\x01cover.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
