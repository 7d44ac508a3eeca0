package orchestrators

import (
	"context"

	"parley/internal/domain/member"
	"parley/internal/domain/practice"
)

// RecordPracticeInput carries a completed practice session to record.
type RecordPracticeInput struct {
	Session practice.Session
}

// RecordPracticeResult returns the stored session and the updated member.
type RecordPracticeResult struct {
	Session practice.Session
	Member  member.Member
}

// MemberStoreForPractice defines the member store interface needed by
// ExecuteRecordPractice.
type MemberStoreForPractice interface {
	GetByID(ctx context.Context, id int64) (member.Member, error)
	Update(ctx context.Context, m member.Member) (member.Member, error)
}

// PracticeStoreForRecord defines the session store interface needed by
// ExecuteRecordPractice.
type PracticeStoreForRecord interface {
	Append(ctx context.Context, s practice.Session) (practice.Session, error)
}

// RecordPracticeDeps holds dependencies for RecordPractice.
type RecordPracticeDeps struct {
	MemberStore   MemberStoreForPractice
	PracticeStore PracticeStoreForRecord
}

// ExecuteRecordPractice appends a practice session and folds its result
// into the member's aggregate stats.
// PRE: Session.MemberID identifies an existing member
// POST: Session is appended with an assigned ID; member counters reflect it
// INVARIANT: Sessions are append-only and never mutated after this call
func ExecuteRecordPractice(ctx context.Context, input RecordPracticeInput, deps RecordPracticeDeps) (RecordPracticeResult, error) {
	if err := input.Session.Validate(); err != nil {
		return RecordPracticeResult{}, err
	}

	m, err := deps.MemberStore.GetByID(ctx, input.Session.MemberID)
	if err != nil {
		return RecordPracticeResult{}, err
	}

	stored, err := deps.PracticeStore.Append(ctx, input.Session)
	if err != nil {
		return RecordPracticeResult{}, err
	}

	m.ApplyResult(stored.Outcome == practice.OutcomeWon, stored.Score)
	updated, err := deps.MemberStore.Update(ctx, m)
	if err != nil {
		return RecordPracticeResult{}, err
	}

	return RecordPracticeResult{Session: stored, Member: updated}, nil
}
