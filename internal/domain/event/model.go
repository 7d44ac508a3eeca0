package event

import (
	"errors"
	"strconv"
	"strings"
)

// GlobalScope is the OrgID of platform-wide events. Organization-internal
// events carry the owning organization's id instead.
const GlobalScope int64 = 0

// Lifecycle status constants
const (
	StatusDraft     = "draft"
	StatusOpen      = "open"
	StatusPublished = "published"
)

// Event type constants
const (
	TypeDebate    = "debate"
	TypeInterview = "interview"
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("event title cannot be empty")
	ErrInvalidStatus   = errors.New("status must be 'draft', 'open' or 'published'")
	ErrInvalidType     = errors.New("event type must be 'debate' or 'interview'")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrOverCapacity    = errors.New("participant count exceeds capacity")
	ErrFull            = errors.New("event is at capacity")
	ErrNotOpen         = errors.New("event is not open for registration")
)

// Event is a scheduled debate or interview gathering. The same shape serves
// both organization-internal and platform-wide events; scope is the OrgID.
type Event struct {
	ID           int64  `json:"id"`
	OrgID        int64  `json:"org_id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	Participants int    `json:"participants"`
	Capacity     int    `json:"capacity"`
	Deadline     string `json:"deadline"`
	Type         string `json:"type"`
}

// Validate checks if the Event has valid data.
// PRE: Event struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Participants never exceeds Capacity
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Status != StatusDraft && e.Status != StatusOpen && e.Status != StatusPublished {
		return ErrInvalidStatus
	}
	if e.Type != TypeDebate && e.Type != TypeInterview {
		return ErrInvalidType
	}
	if e.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if e.Participants < 0 {
		return errors.New("participant count cannot be negative")
	}
	if e.Participants > e.Capacity {
		return ErrOverCapacity
	}
	return nil
}

// IsGlobal returns true for platform-wide events.
// INVARIANT: Event fields are not mutated
func (e *Event) IsGlobal() bool {
	return e.OrgID == GlobalScope
}

// Register adds one participant to an open event.
// PRE: Event is open and below capacity
// POST: Participants incremented by one
// INVARIANT: Participants <= Capacity
func (e *Event) Register() error {
	if e.Status != StatusOpen {
		return ErrNotOpen
	}
	if e.Participants >= e.Capacity {
		return ErrFull
	}
	e.Participants++
	return nil
}

// Matches reports whether the event matches a case-insensitive
// substring query over its title and id.
// INVARIANT: Event fields are not mutated
func (e *Event) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strconv.FormatInt(e.ID, 10), q)
}
