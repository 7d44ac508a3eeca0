package organization

import (
	"errors"
	"strconv"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Lifecycle status constants
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// Domain errors
var (
	ErrEmptyName     = errors.New("organization name cannot be empty")
	ErrInvalidStatus = errors.New("status must be 'active' or 'disabled'")
)

// Organization holds state for a customer organization.
// Domain is advisory only; uniqueness is not enforced.
type Organization struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Users    int    `json:"users"`
	Industry string `json:"industry"`
	Status   string `json:"status"`
}

// Validate checks if the Organization has valid data.
// PRE: Organization struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty, Status must be a known value
func (o *Organization) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyName
	}
	if len(o.Name) > MaxNameLength {
		return errors.New("organization name cannot exceed 100 characters")
	}
	if o.Status != StatusActive && o.Status != StatusDisabled {
		return ErrInvalidStatus
	}
	if o.Users < 0 {
		return errors.New("seat count cannot be negative")
	}
	return nil
}

// IsActive returns true if the organization is currently active.
// INVARIANT: Status field is not mutated
func (o *Organization) IsActive() bool {
	return o.Status == StatusActive
}

// ToggleStatus flips the lifecycle status between active and disabled.
// PRE: Status is a known value
// POST: Status is the opposite value; no other field changes
func (o *Organization) ToggleStatus() {
	if o.Status == StatusActive {
		o.Status = StatusDisabled
		return
	}
	o.Status = StatusActive
}

// Matches reports whether the organization matches a case-insensitive
// substring query over its name, id and domain.
// INVARIANT: Organization fields are not mutated
func (o *Organization) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(o.Name), q) ||
		strings.Contains(strconv.FormatInt(o.ID, 10), q) ||
		strings.Contains(strings.ToLower(o.Domain), q)
}
