package orchestrators

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	memberStore "parley/internal/adapters/storage/member"
	"parley/internal/domain/account"
	"parley/internal/domain/member"
)

// ImportMembersInput carries input for the bulk member import.
type ImportMembersInput struct {
	OrgID  int64
	Reader io.Reader
}

// RowError describes a rejected import row.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportMembersResult reports the outcome of a bulk import. Every input
// row is accounted for in exactly one of the three buckets.
type ImportMembersResult struct {
	Created  int        `json:"created"`
	Skipped  int        `json:"skipped"`
	Rejected []RowError `json:"rejected"`
}

// ImportMembersDeps holds dependencies for ImportMembers.
type ImportMembersDeps struct {
	MemberStore  MemberStoreForImport
	AccountStore AccountStoreForImport
	TempPassword string
}

// MemberStoreForImport defines the member store interface needed by the import.
type MemberStoreForImport interface {
	GetByEmail(ctx context.Context, email string) (member.Member, error)
	Create(ctx context.Context, m member.Member) (member.Member, error)
	Delete(ctx context.Context, id int64) error
}

// AccountStoreForImport defines the account store interface needed by the import.
type AccountStoreForImport interface {
	Save(ctx context.Context, a account.Account) error
}

// expected CSV header for member imports
var importHeader = []string{"name", "email", "tier"}

// ExecuteImportMembers parses a CSV of members and creates them in the
// given organization. Rows whose email already exists are skipped; rows
// that fail validation are rejected with a per-row reason.
// PRE: Reader yields CSV with header name,email,tier
// POST: Created+Skipped+len(Rejected) equals the number of data rows read
// INVARIANT: A rejected or skipped row leaves no member or account behind
func ExecuteImportMembers(ctx context.Context, input ImportMembersInput, deps ImportMembersDeps) (ImportMembersResult, error) {
	result := ImportMembersResult{Rejected: []RowError{}}

	r := csv.NewReader(input.Reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return result, fmt.Errorf("reading header: %w", err)
	}
	if !headerMatches(header) {
		return result, fmt.Errorf("unexpected header %v, want %v", header, importHeader)
	}

	line := 1
	for {
		line++
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: "malformed row"})
			continue
		}
		if len(record) < 2 {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: "missing fields"})
			continue
		}

		m := member.Member{
			OrgID:  input.OrgID,
			Name:   strings.TrimSpace(record[0]),
			Email:  strings.ToLower(strings.TrimSpace(record[1])),
			Tier:   "basic",
			Status: member.StatusActive,
		}
		if len(record) >= 3 && strings.TrimSpace(record[2]) != "" {
			m.Tier = strings.TrimSpace(record[2])
		}

		if err := m.Validate(); err != nil {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: err.Error()})
			continue
		}

		if _, err := deps.MemberStore.GetByEmail(ctx, m.Email); err == nil {
			result.Skipped++
			continue
		}

		created, err := deps.MemberStore.Create(ctx, m)
		if err != nil {
			if errors.Is(err, memberStore.ErrDuplicateEmail) {
				result.Skipped++
				continue
			}
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: "store error"})
			continue
		}

		acct := account.Account{
			ID:                     uuid.NewString(),
			Email:                  created.Email,
			Role:                   account.RoleMember,
			OrgID:                  input.OrgID,
			MemberID:               created.ID,
			Status:                 account.StatusActive,
			PasswordChangeRequired: true,
		}
		// A rejected row must leave no trace: if the credential record
		// cannot be written, the member created above comes back out.
		if err := acct.SetPassword(deps.TempPassword); err != nil {
			rollbackMember(ctx, deps.MemberStore, created.ID)
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: "temp password rejected"})
			continue
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			rollbackMember(ctx, deps.MemberStore, created.ID)
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: "store error"})
			continue
		}

		result.Created++
	}

	return result, nil
}

// rollbackMember removes a member whose credential record failed to
// persist, keeping the one-account-per-member pairing intact.
func rollbackMember(ctx context.Context, store MemberStoreForImport, id int64) {
	if err := store.Delete(ctx, id); err != nil {
		slog.Warn("import_event", "event", "member_rollback_failed", "member_id", id, "error", err)
	}
}

func headerMatches(header []string) bool {
	if len(header) < len(importHeader) {
		return false
	}
	for i, want := range importHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return false
		}
	}
	return true
}
