package orchestrators

import (
	"context"
	"errors"
	"testing"

	"parley/internal/domain/account"
	"parley/internal/domain/course"
	"parley/internal/domain/event"
	"parley/internal/domain/member"
	"parley/internal/domain/organization"
	"parley/internal/domain/practice"
)

// seedRecorder counts SeedIfEmpty calls per collection and captures the
// account payload for assertions.
type seedRecorder struct {
	calls    map[string]int
	accounts []account.Account
	seeded   bool
}

func newSeedRecorder(seeded bool) *seedRecorder {
	return &seedRecorder{calls: map[string]int{}, seeded: seeded}
}

func (r *seedRecorder) deps() SeedDeps {
	return SeedDeps{
		Organizations: seedOrgFn(func(v []organization.Organization) (bool, error) { r.calls["orgs"]++; return r.seeded, nil }),
		Members:       seedMemberFn(func(v []member.Member) (bool, error) { r.calls["members"]++; return r.seeded, nil }),
		Accounts: seedAccountFn(func(v []account.Account) (bool, error) {
			r.calls["accounts"]++
			r.accounts = v
			return r.seeded, nil
		}),
		GlobalEvents: seedEventFn(func(v []event.Event) (bool, error) { r.calls["global_events"]++; return r.seeded, nil }),
		OrgEvents:    seedEventFn(func(v []event.Event) (bool, error) { r.calls["org_events"]++; return r.seeded, nil }),
		Courses:      seedCourseFn(func(v []course.Course) (bool, error) { r.calls["courses"]++; return r.seeded, nil }),
		Practice:     seedPracticeFn(func(v []practice.Session) (bool, error) { r.calls["practice"]++; return r.seeded, nil }),
	}
}

// Function adapters for the per-collection seed interfaces.
type seedOrgFn func([]organization.Organization) (bool, error)

func (f seedOrgFn) SeedIfEmpty(_ context.Context, v []organization.Organization) (bool, error) {
	return f(v)
}

type seedMemberFn func([]member.Member) (bool, error)

func (f seedMemberFn) SeedIfEmpty(_ context.Context, v []member.Member) (bool, error) { return f(v) }

type seedAccountFn func([]account.Account) (bool, error)

func (f seedAccountFn) SeedIfEmpty(_ context.Context, v []account.Account) (bool, error) {
	return f(v)
}

type seedEventFn func([]event.Event) (bool, error)

func (f seedEventFn) SeedIfEmpty(_ context.Context, v []event.Event) (bool, error) { return f(v) }

type seedCourseFn func([]course.Course) (bool, error)

func (f seedCourseFn) SeedIfEmpty(_ context.Context, v []course.Course) (bool, error) { return f(v) }

type seedPracticeFn func([]practice.Session) (bool, error)

func (f seedPracticeFn) SeedIfEmpty(_ context.Context, v []practice.Session) (bool, error) {
	return f(v)
}

func TestExecuteSeed_TouchesEveryCollection(t *testing.T) {
	rec := newSeedRecorder(true)

	if err := ExecuteSeed(context.Background(), "parley-admin-dev", rec.deps()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"orgs", "members", "accounts", "global_events", "org_events", "courses", "practice"} {
		if rec.calls[name] != 1 {
			t.Errorf("%s seeded %d times, want 1", name, rec.calls[name])
		}
	}
}

func TestExecuteSeed_AccountPayload(t *testing.T) {
	rec := newSeedRecorder(true)

	if err := ExecuteSeed(context.Background(), "parley-admin-dev", rec.deps()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One admin plus one credential per seeded member.
	wantAccounts := 1 + len(seedMembers())
	if len(rec.accounts) != wantAccounts {
		t.Fatalf("accounts = %d, want %d", len(rec.accounts), wantAccounts)
	}

	admin := rec.accounts[0]
	if admin.Email != SeedAdminEmail || admin.Role != account.RoleSysAdmin {
		t.Errorf("admin = %+v", admin)
	}
	if admin.PasswordChangeRequired {
		t.Error("admin should not be forced through the password funnel")
	}
	if err := admin.CheckPassword("parley-admin-dev"); err != nil {
		t.Errorf("admin password rejected: %v", err)
	}

	for _, a := range rec.accounts[1:] {
		if a.Role != account.RoleMember {
			t.Errorf("member account role = %q", a.Role)
		}
		if !a.PasswordChangeRequired {
			t.Errorf("member account %s should require a password change", a.Email)
		}
		if a.MemberID < seedRollStart {
			t.Errorf("member account %s has roll %d", a.Email, a.MemberID)
		}
	}
}

func TestExecuteSeed_ShortAdminPassword(t *testing.T) {
	rec := newSeedRecorder(true)

	err := ExecuteSeed(context.Background(), "short", rec.deps())
	if !errors.Is(err, account.ErrPasswordTooShort) {
		t.Errorf("error = %v, want ErrPasswordTooShort", err)
	}
	if len(rec.calls) != 0 {
		t.Error("no collection may be touched when the admin password is rejected")
	}
}

func TestExecuteSeed_StopsOnStoreError(t *testing.T) {
	rec := newSeedRecorder(true)
	deps := rec.deps()
	boom := errors.New("boom")
	deps.Members = seedMemberFn(func(v []member.Member) (bool, error) { return false, boom })

	err := ExecuteSeed(context.Background(), "parley-admin-dev", deps)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if rec.calls["accounts"] != 0 {
		t.Error("later steps must not run after a failure")
	}
}

func TestSeedData_IsInternallyConsistent(t *testing.T) {
	orgIDs := map[int64]bool{}
	for _, o := range seedOrganizations() {
		if err := o.Validate(); err != nil {
			t.Errorf("organization %q: %v", o.Name, err)
		}
		orgIDs[o.ID] = true
	}

	memberIDs := map[int64]bool{}
	for _, m := range seedMembers() {
		if err := m.Validate(); err != nil {
			t.Errorf("member %q: %v", m.Name, err)
		}
		if !orgIDs[m.OrgID] {
			t.Errorf("member %q references unknown org %d", m.Name, m.OrgID)
		}
		memberIDs[m.ID] = true
	}

	for _, ev := range append(seedGlobalEvents(), seedOrgEvents()...) {
		if err := ev.Validate(); err != nil {
			t.Errorf("event %q: %v", ev.Title, err)
		}
	}
	for _, c := range seedCourses() {
		if err := c.Validate(); err != nil {
			t.Errorf("course %q: %v", c.Title, err)
		}
	}
	for _, s := range seedSessions() {
		if err := s.Validate(); err != nil {
			t.Errorf("session %d: %v", s.ID, err)
		}
		if !memberIDs[s.MemberID] {
			t.Errorf("session %d references unknown member %d", s.ID, s.MemberID)
		}
	}
}
