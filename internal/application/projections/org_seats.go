package projections

import (
	"context"

	memberStore "parley/internal/adapters/storage/member"
	orgStore "parley/internal/adapters/storage/organization"
	"parley/internal/domain/member"
	"parley/internal/domain/organization"
)

// OrgSeatUsage compares an organization's seat counter against the number
// of member records actually attached to it.
type OrgSeatUsage struct {
	OrgID         int64  `json:"org_id"`
	Name          string `json:"name"`
	SeatCounter   int    `json:"seat_counter"`
	ActualMembers int    `json:"actual_members"`
	Divergent     bool   `json:"divergent"`
}

// OrgStoreForSeats lists organizations for the seat-usage projection.
type OrgStoreForSeats interface {
	List(ctx context.Context, filter orgStore.ListFilter) ([]organization.Organization, error)
}

// MemberStoreForSeats lists members for the seat-usage projection.
type MemberStoreForSeats interface {
	List(ctx context.Context, filter memberStore.ListFilter) ([]member.Member, error)
}

// ComputeOrgSeatUsage reports seat usage per organization. The seat
// counter and member records are maintained independently, so the
// projection flags divergence rather than reconciling it.
// POST: One entry per organization, in store order
func ComputeOrgSeatUsage(ctx context.Context, orgs OrgStoreForSeats, members MemberStoreForSeats) ([]OrgSeatUsage, error) {
	orgList, err := orgs.List(ctx, orgStore.ListFilter{})
	if err != nil {
		return nil, err
	}
	memberList, err := members.List(ctx, memberStore.ListFilter{})
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(orgList))
	for _, m := range memberList {
		counts[m.OrgID]++
	}

	usage := make([]OrgSeatUsage, 0, len(orgList))
	for _, org := range orgList {
		actual := counts[org.ID]
		usage = append(usage, OrgSeatUsage{
			OrgID:         org.ID,
			Name:          org.Name,
			SeatCounter:   org.Users,
			ActualMembers: actual,
			Divergent:     org.Users != actual,
		})
	}
	return usage, nil
}
