package member

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
	ErrEmptyName     = errors.New("member name cannot be empty")
	ErrInvalidEmail  = errors.New("member email must be valid")
	ErrInvalidStatus = errors.New("status must be 'active' or 'disabled'")
)

// Performance is the embedded practice record of a member.
// It accumulates over time and is never reset by status changes.
type Performance struct {
	Wins       int            `json:"wins"`
	Losses     int            `json:"losses"`
	Skills     map[string]int `json:"skills,omitempty"`
	Strengths  []string       `json:"strengths,omitempty"`
	Weaknesses []string       `json:"weaknesses,omitempty"`
}

// Member holds state for a platform user. OrgID is zero for
// personal users who do not belong to any organization.
type Member struct {
	ID           int64       `json:"id"`
	OrgID        int64       `json:"org_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Tier         string      `json:"tier"`
	Status       string      `json:"status"`
	SessionCount int         `json:"session_count"`
	AvgScore     float64     `json:"avg_score"`
	Performance  Performance `json:"performance"`
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if m.Status != StatusActive && m.Status != StatusDisabled {
		return ErrInvalidStatus
	}
	return nil
}

// IsActive returns true if the member is currently active.
// INVARIANT: Member fields are not mutated
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// ToggleStatus flips the lifecycle status between active and disabled.
// Past practice history is untouched.
// PRE: Status is a known value
// POST: Status is the opposite value; no other field changes
func (m *Member) ToggleStatus() {
	if m.Status == StatusActive {
		m.Status = StatusDisabled
		return
	}
	m.Status = StatusActive
}

// ApplyResult folds one practice outcome into the member's counters.
// PRE: score is the session score for a completed practice session
// POST: SessionCount incremented, AvgScore is the running mean,
//
//	win/loss tallies updated
func (m *Member) ApplyResult(won bool, score float64) {
	total := m.AvgScore*float64(m.SessionCount) + score
	m.SessionCount++
	m.AvgScore = total / float64(m.SessionCount)
	if won {
		m.Performance.Wins++
	} else {
		m.Performance.Losses++
	}
}

// Matches reports whether the member matches a case-insensitive
// substring query over its name, id and email.
// INVARIANT: Member fields are not mutated
func (m *Member) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strconv.FormatInt(m.ID, 10), q) ||
		strings.Contains(strings.ToLower(m.Email), q)
}
