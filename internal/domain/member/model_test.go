package member_test

import (
	"math"
	"testing"

	"parley/internal/domain/member"
)

// TestMember_Validate tests validation of Member.
func TestMember_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       member.Member
		wantErr bool
	}{
		{
			name:    "valid member",
			m:       member.Member{ID: 4501, OrgID: 1, Name: "Mia", Email: "mia@whs.school.nz", Status: member.StatusActive},
			wantErr: false,
		},
		{
			name:    "valid personal user without org",
			m:       member.Member{ID: 9, Name: "Solo", Email: "solo@example.com", Status: member.StatusActive},
			wantErr: false,
		},
		{
			name:    "empty name",
			m:       member.Member{ID: 1, Email: "a@b.c", Status: member.StatusActive},
			wantErr: true,
		},
		{
			name:    "email without at sign",
			m:       member.Member{ID: 1, Name: "Mia", Email: "not-an-email", Status: member.StatusActive},
			wantErr: true,
		},
		{
			name:    "unknown status",
			m:       member.Member{ID: 1, Name: "Mia", Email: "a@b.c", Status: "paused"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestMember_ApplyResult verifies the running mean and win/loss tallies.
func TestMember_ApplyResult(t *testing.T) {
	m := member.Member{ID: 1, Name: "Mia", Email: "a@b.c", Status: member.StatusActive}

	m.ApplyResult(true, 80)
	m.ApplyResult(false, 60)
	m.ApplyResult(true, 70)

	if m.SessionCount != 3 {
		t.Errorf("session_count=%d want 3", m.SessionCount)
	}
	if math.Abs(m.AvgScore-70) > 1e-9 {
		t.Errorf("avg_score=%v want 70", m.AvgScore)
	}
	if m.Performance.Wins != 2 || m.Performance.Losses != 1 {
		t.Errorf("wins=%d losses=%d want 2/1", m.Performance.Wins, m.Performance.Losses)
	}
}

// TestMember_ToggleStatus_KeepsHistory verifies disabling never touches the
// accumulated counters.
func TestMember_ToggleStatus_KeepsHistory(t *testing.T) {
	m := member.Member{ID: 1, Name: "Mia", Email: "a@b.c", Status: member.StatusActive}
	m.ApplyResult(true, 90)

	m.ToggleStatus()
	if m.Status != member.StatusDisabled {
		t.Fatalf("status=%q want disabled", m.Status)
	}
	if m.SessionCount != 1 || m.Performance.Wins != 1 {
		t.Errorf("toggle touched history: %+v", m)
	}

	m.ToggleStatus()
	if m.Status != member.StatusActive {
		t.Errorf("status=%q want active after second toggle", m.Status)
	}
}

// TestMember_Matches covers the substring filter.
func TestMember_Matches(t *testing.T) {
	m := member.Member{ID: 4501, Name: "Mia Parata", Email: "mia.parata@whs.school.nz"}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"mia", true},
		{"PARATA", true},
		{"4501", true},
		{"whs.school", true},
		{"tom", false},
	}
	for _, tt := range tests {
		t.Run("q="+tt.query, func(t *testing.T) {
			if got := m.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q)=%v want %v", tt.query, got, tt.want)
			}
		})
	}
}
