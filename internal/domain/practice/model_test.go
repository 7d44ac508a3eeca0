package practice_test

import (
	"testing"

	"parley/internal/domain/practice"
)

// TestSession_Validate tests validation of Session.
func TestSession_Validate(t *testing.T) {
	valid := practice.Session{
		MemberID: 4501, Type: practice.TypePeer, Topic: "School uniforms",
		Outcome: practice.OutcomeWon, Score: 82, DurationMinutes: 25,
	}

	tests := []struct {
		name    string
		mutate  func(s *practice.Session)
		wantErr error
	}{
		{"valid session", func(s *practice.Session) {}, nil},
		{"missing member", func(s *practice.Session) { s.MemberID = 0 }, practice.ErrNoMember},
		{"unknown type", func(s *practice.Session) { s.Type = "group" }, practice.ErrInvalidType},
		{"unknown outcome", func(s *practice.Session) { s.Outcome = "draw" }, practice.ErrInvalidOutcome},
		{"score below range", func(s *practice.Session) { s.Score = -1 }, practice.ErrInvalidScore},
		{"score above range", func(s *practice.Session) { s.Score = 101 }, practice.ErrInvalidScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSession_Validate_EmptyTopic checks the topic requirement separately
// because it is not a sentinel error.
func TestSession_Validate_EmptyTopic(t *testing.T) {
	s := practice.Session{MemberID: 1, Type: practice.TypeAI, Topic: "  ", Outcome: practice.OutcomeLost, Score: 50}
	if err := s.Validate(); err == nil {
		t.Error("Validate() accepted an empty topic")
	}
}

// TestSession_Won verifies outcome interpretation.
func TestSession_Won(t *testing.T) {
	won := practice.Session{Outcome: practice.OutcomeWon}
	lost := practice.Session{Outcome: practice.OutcomeLost}
	if !won.Won() {
		t.Error("Won()=false for a won session")
	}
	if lost.Won() {
		t.Error("Won()=true for a lost session")
	}
}
