package errors

import (
	"strings"
	"testing"
)

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "panel", false},
		{"with dash", "side-panel", false},
		{"with dot and colon", "toolbar.left:2", false},
		{"digits", "42", false},

		{"too long", strings.Repeat("a", 129), true},
		{"leading dash", "-panel", true},
		{"space", "side panel", true},
		{"slash", "a/b", true},
		{"quote", `a"b`, true},
		{"control char", "a\x01b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidItem) {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidItem)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"normal", 800, 600, false},
		{"max", MaxDimension, MaxDimension, false},

		{"negative width", -1, 10, true},
		{"negative height", 10, -1, true},
		{"too wide", MaxDimension + 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(ErrCodeInvalidContainer, "container", tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidContainer) {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidContainer)
			}
		})
	}
}

func TestValidateEnum(t *testing.T) {
	allowed := []string{"left", "center", "right"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"left", false},
		{"CENTER", false},
		{"middle", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateEnum("align", tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEnum(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}

	err := ValidateEnum("align", "middle", allowed)
	if want := `invalid align "middle" (want one of left, center, right)`; UserMessage(err) != want {
		t.Errorf("message = %q, want %q", UserMessage(err), want)
	}
}
