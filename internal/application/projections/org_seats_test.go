package projections

import (
	"context"
	"errors"
	"testing"

	memberStore "parley/internal/adapters/storage/member"
	orgStore "parley/internal/adapters/storage/organization"
	"parley/internal/domain/member"
	"parley/internal/domain/organization"
)

// mockOrgLister implements OrgStoreForSeats for testing.
type mockOrgLister struct {
	orgs    []organization.Organization
	listErr error
}

// List implements OrgStoreForSeats.
// POST: returns the configured organizations or listErr
func (m *mockOrgLister) List(_ context.Context, _ orgStore.ListFilter) ([]organization.Organization, error) {
	return m.orgs, m.listErr
}

// mockMemberLister implements MemberStoreForSeats for testing.
type mockMemberLister struct {
	members []member.Member
	listErr error
}

// List implements MemberStoreForSeats.
// POST: returns the configured members or listErr
func (m *mockMemberLister) List(_ context.Context, _ memberStore.ListFilter) ([]member.Member, error) {
	return m.members, m.listErr
}

func TestComputeOrgSeatUsage(t *testing.T) {
	orgs := &mockOrgLister{orgs: []organization.Organization{
		{ID: 1, Name: "Wellington High School", Users: 2},
		{ID: 2, Name: "Aurora Consulting", Users: 5},
		{ID: 3, Name: "Empty Org", Users: 0},
	}}
	members := &mockMemberLister{members: []member.Member{
		{ID: 4501, OrgID: 1},
		{ID: 4502, OrgID: 1},
		{ID: 4503, OrgID: 2},
		{ID: 4504, OrgID: 0}, // personal user, counts toward no org
	}}

	usage, err := ComputeOrgSeatUsage(context.Background(), orgs, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(usage) != 3 {
		t.Fatalf("len = %d, want 3", len(usage))
	}

	tests := []struct {
		idx       int
		actual    int
		divergent bool
	}{
		{0, 2, false},
		{1, 1, true},
		{2, 0, false},
	}
	for _, tc := range tests {
		got := usage[tc.idx]
		if got.ActualMembers != tc.actual {
			t.Errorf("org %d ActualMembers = %d, want %d", got.OrgID, got.ActualMembers, tc.actual)
		}
		if got.Divergent != tc.divergent {
			t.Errorf("org %d Divergent = %v, want %v", got.OrgID, got.Divergent, tc.divergent)
		}
	}
}

func TestComputeOrgSeatUsage_StoreErrors(t *testing.T) {
	boom := errors.New("boom")

	if _, err := ComputeOrgSeatUsage(context.Background(), &mockOrgLister{listErr: boom}, &mockMemberLister{}); !errors.Is(err, boom) {
		t.Errorf("org error = %v, want boom", err)
	}
	if _, err := ComputeOrgSeatUsage(context.Background(), &mockOrgLister{}, &mockMemberLister{listErr: boom}); !errors.Is(err, boom) {
		t.Errorf("member error = %v, want boom", err)
	}
}
