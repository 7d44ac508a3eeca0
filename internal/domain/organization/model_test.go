package organization_test

import (
	"strings"
	"testing"

	"parley/internal/domain/organization"
)

// TestOrganization_Validate tests validation of Organization.
func TestOrganization_Validate(t *testing.T) {
	tests := []struct {
		name    string
		org     organization.Organization
		wantErr bool
	}{
		{
			name:    "valid organization",
			org:     organization.Organization{ID: 1, Name: "Acme School", Domain: "acme.example", Status: organization.StatusActive},
			wantErr: false,
		},
		{
			name:    "empty name",
			org:     organization.Organization{ID: 2, Status: organization.StatusActive},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			org:     organization.Organization{ID: 3, Name: "   ", Status: organization.StatusActive},
			wantErr: true,
		},
		{
			name:    "name too long",
			org:     organization.Organization{ID: 4, Name: strings.Repeat("x", 101), Status: organization.StatusActive},
			wantErr: true,
		},
		{
			name:    "unknown status",
			org:     organization.Organization{ID: 5, Name: "Acme", Status: "archived"},
			wantErr: true,
		},
		{
			name:    "negative seat count",
			org:     organization.Organization{ID: 6, Name: "Acme", Status: organization.StatusActive, Users: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.org.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestOrganization_ToggleStatus verifies the toggle flips status both ways
// and changes nothing else.
func TestOrganization_ToggleStatus(t *testing.T) {
	org := organization.Organization{ID: 1, Name: "Acme", Users: 7, Status: organization.StatusActive}

	org.ToggleStatus()
	if org.Status != organization.StatusDisabled {
		t.Errorf("status=%q want %q", org.Status, organization.StatusDisabled)
	}
	org.ToggleStatus()
	if org.Status != organization.StatusActive {
		t.Errorf("status=%q want %q", org.Status, organization.StatusActive)
	}
	if org.Users != 7 || org.Name != "Acme" {
		t.Errorf("toggle mutated other fields: %+v", org)
	}
}

// TestOrganization_Matches covers the case-insensitive substring filter
// over name, id and domain.
func TestOrganization_Matches(t *testing.T) {
	org := organization.Organization{ID: 42, Name: "Wellington High", Domain: "whs.school.nz"}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"wellington", true},
		{"WELLINGTON", true},
		{"42", true},
		{"whs.school", true},
		{"auckland", false},
	}
	for _, tt := range tests {
		t.Run("q="+tt.query, func(t *testing.T) {
			if got := org.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q)=%v want %v", tt.query, got, tt.want)
			}
		})
	}
}
