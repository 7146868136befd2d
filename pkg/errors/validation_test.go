package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "out.pdf", false},
		{"nested file", "build/sheets/out.pdf", false},
		{"absolute file", "/tmp/out.pdf", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 1025), true},
		{"null byte", "out\x00.pdf", true},
		{"newline", "out\n.pdf", true},
		{"directory", "build/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		v       int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 20, false},
		{"inside", 4, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"too large", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("rows", tt.v, 1, 20)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("dpi", 96); err != nil {
		t.Errorf("ValidatePositive(96) = %v", err)
	}
	if err := ValidatePositive("dpi", 0); err == nil {
		t.Error("ValidatePositive(0) should fail")
	}
	if err := ValidateNonNegative("gap", 0); err != nil {
		t.Errorf("ValidateNonNegative(0) = %v", err)
	}
	if err := ValidateNonNegative("gap", -0.5); err == nil {
		t.Error("ValidateNonNegative(-0.5) should fail")
	}
}
