package course

import (
	"errors"
	"strconv"
	"strings"
)

// Lifecycle status constants
const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

// Domain errors
var (
	ErrEmptyTitle    = errors.New("course title cannot be empty")
	ErrInvalidStatus = errors.New("status must be 'active' or 'draft'")
)

// Course is a catalog entry owned by the system administrator and read by
// the public catalog. Description holds markdown source.
type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Modules     int    `json:"modules"`
	Enrolled    int    `json:"enrolled"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Validate checks if the Course has valid data.
// PRE: Course struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if c.Status != StatusActive && c.Status != StatusDraft {
		return ErrInvalidStatus
	}
	if c.Modules < 0 || c.Enrolled < 0 {
		return errors.New("module and enrollment counts cannot be negative")
	}
	return nil
}

// IsActive returns true if the course is live in the catalog.
// INVARIANT: Course fields are not mutated
func (c *Course) IsActive() bool {
	return c.Status == StatusActive
}

// ToggleStatus flips the lifecycle status between active and draft.
// PRE: Status is a known value
// POST: Status is the opposite value; no other field changes
func (c *Course) ToggleStatus() {
	if c.Status == StatusActive {
		c.Status = StatusDraft
		return
	}
	c.Status = StatusActive
}

// Enroll records one additional enrolled student.
// POST: Enrolled incremented by one
func (c *Course) Enroll() {
	c.Enrolled++
}

// Matches reports whether the course matches a case-insensitive
// substring query over its title and id.
// INVARIANT: Course fields are not mutated
func (c *Course) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strconv.FormatInt(c.ID, 10), q)
}
