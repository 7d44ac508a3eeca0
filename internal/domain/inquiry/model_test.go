package inquiry_test

import (
	"errors"
	"testing"

	"parley/internal/domain/inquiry"
)

// TestInquiry_Validate tests local validation before any store write.
func TestInquiry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		inq     inquiry.Inquiry
		wantErr error
	}{
		{"valid inquiry", inquiry.Inquiry{Name: "Pat", Email: "pat@example.com"}, nil},
		{"empty name", inquiry.Inquiry{Email: "pat@example.com"}, inquiry.ErrEmptyName},
		{"whitespace name", inquiry.Inquiry{Name: "  ", Email: "pat@example.com"}, inquiry.ErrEmptyName},
		{"empty email", inquiry.Inquiry{Name: "Pat"}, inquiry.ErrEmptyEmail},
		{"malformed email", inquiry.Inquiry{Name: "Pat", Email: "pat@@nope"}, inquiry.ErrInvalidEmail},
		{"email without tld", inquiry.Inquiry{Name: "Pat", Email: "pat@host"}, inquiry.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.inq.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
