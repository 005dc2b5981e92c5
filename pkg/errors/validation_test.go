package errors

import (
	"math"
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 1, false},
		{"inside", 0.5, false},

		{"below", -0.01, true},
		{"above", 1.01, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("scale", tt.v, 0, 1)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidControls) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidControls)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount("targets", 3, 3, 12); err != nil {
		t.Errorf("ValidateCount(3) = %v", err)
	}
	if err := ValidateCount("targets", 2, 3, 12); err == nil {
		t.Error("ValidateCount(2) = nil, want error")
	}
	if err := ValidateCount("targets", 13, 3, 12); err == nil {
		t.Error("ValidateCount(13) = nil, want error")
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "0b5c6f7e-3f0a-4b8e-9d1c-2a4e6f8b0c1d", false},
		{"short", "abc123", false},

		{"empty", "", true},
		{"slash", "a/b", true},
		{"dot", "a.b", true},
		{"too long", string(make([]byte, 65)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
