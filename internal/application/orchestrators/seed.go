package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"parley/internal/domain/account"
	"parley/internal/domain/course"
	"parley/internal/domain/event"
	"parley/internal/domain/member"
	"parley/internal/domain/organization"
	"parley/internal/domain/practice"
)

// SeedAdminEmail is the email of the bootstrap system administrator.
const SeedAdminEmail = "admin@sys.example"

// seedRollStart is the first roll number assigned to seeded members.
const seedRollStart int64 = 4501

// SeedDeps holds the stores populated by the seed orchestrators.
type SeedDeps struct {
	Organizations OrgStoreForSeed
	Members       MemberStoreForSeed
	Accounts      AccountStoreForSeed
	GlobalEvents  EventStoreForSeed
	OrgEvents     EventStoreForSeed
	Courses       CourseStoreForSeed
	Practice      PracticeStoreForSeed
}

type OrgStoreForSeed interface {
	SeedIfEmpty(ctx context.Context, values []organization.Organization) (bool, error)
}

type MemberStoreForSeed interface {
	SeedIfEmpty(ctx context.Context, values []member.Member) (bool, error)
}

type AccountStoreForSeed interface {
	SeedIfEmpty(ctx context.Context, values []account.Account) (bool, error)
}

type EventStoreForSeed interface {
	SeedIfEmpty(ctx context.Context, values []event.Event) (bool, error)
}

type CourseStoreForSeed interface {
	SeedIfEmpty(ctx context.Context, values []course.Course) (bool, error)
}

type PracticeStoreForSeed interface {
	SeedIfEmpty(ctx context.Context, values []practice.Session) (bool, error)
}

// ExecuteSeed populates every collection on first run. Each collection is
// seeded independently and exactly once; reruns are no-ops.
// PRE: Stores are wired to an initialized database
// POST: Every collection exists; the sysadmin account is present
// INVARIANT: An already-seeded collection is never overwritten
func ExecuteSeed(ctx context.Context, adminPassword string, deps SeedDeps) error {
	admin := account.Account{
		ID:     uuid.NewString(),
		Email:  SeedAdminEmail,
		Role:   account.RoleSysAdmin,
		Status: account.StatusActive,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	members := seedMembers()
	accounts := []account.Account{admin}
	for _, m := range members {
		acct := account.Account{
			ID:                     uuid.NewString(),
			Email:                  m.Email,
			Role:                   account.RoleMember,
			OrgID:                  m.OrgID,
			MemberID:               m.ID,
			Status:                 account.StatusActive,
			PasswordChangeRequired: true,
		}
		if err := acct.SetPassword(adminPassword); err != nil {
			return fmt.Errorf("seeding member account: %w", err)
		}
		accounts = append(accounts, acct)
	}

	steps := []struct {
		name string
		run  func() (bool, error)
	}{
		{"organizations", func() (bool, error) { return deps.Organizations.SeedIfEmpty(ctx, seedOrganizations()) }},
		{"members", func() (bool, error) { return deps.Members.SeedIfEmpty(ctx, members) }},
		{"accounts", func() (bool, error) { return deps.Accounts.SeedIfEmpty(ctx, accounts) }},
		{"global_events", func() (bool, error) { return deps.GlobalEvents.SeedIfEmpty(ctx, seedGlobalEvents()) }},
		{"org_events", func() (bool, error) { return deps.OrgEvents.SeedIfEmpty(ctx, seedOrgEvents()) }},
		{"courses", func() (bool, error) { return deps.Courses.SeedIfEmpty(ctx, seedCourses()) }},
		{"practice_sessions", func() (bool, error) { return deps.Practice.SeedIfEmpty(ctx, seedSessions()) }},
	}

	for _, step := range steps {
		seeded, err := step.run()
		if err != nil {
			return fmt.Errorf("seeding %s: %w", step.name, err)
		}
		if seeded {
			slog.Info("seed_event", "collection", step.name, "seeded", true)
		}
	}

	return nil
}

func seedOrganizations() []organization.Organization {
	return []organization.Organization{
		{ID: 1, Name: "Wellington High School", Domain: "whs.school.nz", Users: 3, Industry: "Education", Status: organization.StatusActive},
		{ID: 2, Name: "Aurora Consulting", Domain: "aurora.example", Users: 0, Industry: "Professional Services", Status: organization.StatusActive},
	}
}

func seedMembers() []member.Member {
	return []member.Member{
		{
			ID: seedRollStart, OrgID: 1, Name: "Mia Parata", Email: "mia.parata@whs.school.nz",
			Tier: "advanced", Status: member.StatusActive, SessionCount: 3, AvgScore: 78.3,
			Performance: member.Performance{
				Wins: 2, Losses: 1,
				Skills:    map[string]int{"rebuttal": 4, "structure": 3, "delivery": 4},
				Strengths: []string{"rebuttal"}, Weaknesses: []string{"timing"},
			},
		},
		{
			ID: seedRollStart + 1, OrgID: 1, Name: "Tom Keller", Email: "tom.keller@whs.school.nz",
			Tier: "basic", Status: member.StatusActive, SessionCount: 1, AvgScore: 61.0,
			Performance: member.Performance{
				Wins: 0, Losses: 1,
				Skills:    map[string]int{"rebuttal": 2, "structure": 3, "delivery": 2},
				Strengths: []string{"structure"}, Weaknesses: []string{"rebuttal"},
			},
		},
		{
			ID: seedRollStart + 2, OrgID: 1, Name: "Sofia Lindqvist", Email: "sofia.lindqvist@whs.school.nz",
			Tier: "basic", Status: member.StatusActive,
		},
	}
}

func seedGlobalEvents() []event.Event {
	return []event.Event{
		{ID: 1001, OrgID: event.GlobalScope, Title: "National Debate Open", Status: event.StatusOpen, Participants: 18, Capacity: 64, Deadline: "2026-10-01", Type: event.TypeDebate},
		{ID: 1002, OrgID: event.GlobalScope, Title: "Mock Interview Week", Status: event.StatusDraft, Participants: 0, Capacity: 40, Deadline: "2026-11-15", Type: event.TypeInterview},
	}
}

func seedOrgEvents() []event.Event {
	return []event.Event{
		{ID: 2001, OrgID: 1, Title: "House Debating Round 1", Status: event.StatusOpen, Participants: 6, Capacity: 16, Deadline: "2026-09-20", Type: event.TypeDebate},
	}
}

func seedCourses() []course.Course {
	return []course.Course{
		{ID: 1, Title: "Foundations of Argument", Modules: 6, Enrolled: 42, Status: course.StatusActive,
			Description: "Learn to build a case from first principles.\n\n## What you will cover\n\n- Claims, warrants and impacts\n- Signposting\n- Weighing arguments"},
		{ID: 2, Title: "Interview Under Pressure", Modules: 4, Enrolled: 17, Status: course.StatusActive,
			Description: "Practice answering hard questions with structure and calm."},
		{ID: 3, Title: "Advanced Rebuttal", Modules: 8, Enrolled: 0, Status: course.StatusDraft,
			Description: "Drafting in progress."},
	}
}

func seedSessions() []practice.Session {
	return []practice.Session{
		{ID: 1, MemberID: seedRollStart, Type: practice.TypePeer, Topic: "School uniforms should be optional", Opponent: "Tom Keller", Date: "2026-08-12", DurationMinutes: 25, Outcome: practice.OutcomeWon, Score: 82, Feedback: "Strong rebuttals, watch your timing."},
		{ID: 2, MemberID: seedRollStart, Type: practice.TypeAI, Topic: "Social media does more harm than good", Opponent: "AI opponent", Date: "2026-08-19", DurationMinutes: 20, Outcome: practice.OutcomeLost, Score: 68, Feedback: "Structure slipped in the second half."},
		{ID: 3, MemberID: seedRollStart, Type: practice.TypePeer, Topic: "Homework should be abolished", Opponent: "Sofia Lindqvist", Date: "2026-08-26", DurationMinutes: 30, Outcome: practice.OutcomeWon, Score: 85, Feedback: "Excellent weighing in the summary."},
		{ID: 4, MemberID: seedRollStart + 1, Type: practice.TypeAI, Topic: "Remote work is here to stay", Opponent: "AI opponent", Date: "2026-08-20", DurationMinutes: 15, Outcome: practice.OutcomeLost, Score: 61, Feedback: "Bring evidence for your second point."},
	}
}
