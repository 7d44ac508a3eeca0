package practice

import (
	"errors"
	"strings"
)

// Session type constants.
const (
	TypePeer = "peer"
	TypeAI   = "ai"
)

// Outcome constants.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Domain errors
var (
	ErrNoMember       = errors.New("practice session must reference a member")
	ErrInvalidType    = errors.New("session type must be 'peer' or 'ai'")
	ErrInvalidOutcome = errors.New("outcome must be 'won' or 'lost'")
	ErrInvalidScore   = errors.New("score must be between 0 and 100")
)

// Session is one debate or interview attempt by a member.
// Records are immutable once created; history is append-only.
type Session struct {
	ID              int64   `json:"id"`
	MemberID        int64   `json:"member_id"`
	Type            string  `json:"type"`
	Topic           string  `json:"topic"`
	Opponent        string  `json:"opponent"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"duration_minutes"`
	Outcome         string  `json:"outcome"`
	Score           float64 `json:"score"`
	Feedback        string  `json:"feedback"`
}

// Validate checks if the Session has valid data.
// PRE: Session struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MemberID must be set; type, outcome and score are bounded
func (s *Session) Validate() error {
	if s.MemberID <= 0 {
		return ErrNoMember
	}
	if s.Type != TypePeer && s.Type != TypeAI {
		return ErrInvalidType
	}
	if s.Outcome != OutcomeWon && s.Outcome != OutcomeLost {
		return ErrInvalidOutcome
	}
	if s.Score < 0 || s.Score > 100 {
		return ErrInvalidScore
	}
	if strings.TrimSpace(s.Topic) == "" {
		return errors.New("topic cannot be empty")
	}
	return nil
}

// Won returns true if the member won this session.
// INVARIANT: Session fields are not mutated
func (s *Session) Won() bool {
	return s.Outcome == OutcomeWon
}
