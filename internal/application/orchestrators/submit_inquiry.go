package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"parley/internal/adapters/email"
	"parley/internal/domain/inquiry"
)

// SubmitInquiryInput carries the raw contact form fields.
type SubmitInquiryInput struct {
	Name         string
	Email        string
	Phone        string
	Organization string
	Message      string
}

// SubmitInquiryResult reports the user-facing outcome of a submission.
// Message is always one of the fixed inquiry messages.
type SubmitInquiryResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// InquiryStoreForSubmit defines the store interface needed by SubmitInquiry.
type InquiryStoreForSubmit interface {
	Insert(ctx context.Context, inq inquiry.Inquiry) error
}

// SubmitInquiryDeps holds dependencies for SubmitInquiry. Sender and
// NotifyAddress are optional; when unset no notification is sent.
type SubmitInquiryDeps struct {
	InquiryStore  InquiryStoreForSubmit
	Sender        email.Sender
	NotifyAddress string
}

// ExecuteSubmitInquiry validates and persists a contact inquiry, then
// optionally notifies by email. Storage failures are mapped to fixed
// user-facing messages and never surface raw error text.
// PRE: Input fields are raw, untrimmed form values
// POST: On OK, the inquiry is persisted; notification failure does not
//
//	change the outcome
// INVARIANT: Validation failures never reach the store
func ExecuteSubmitInquiry(ctx context.Context, input SubmitInquiryInput, deps SubmitInquiryDeps) (SubmitInquiryResult, error) {
	inq := inquiry.Inquiry{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Organization: strings.TrimSpace(input.Organization),
		Message:      strings.TrimSpace(input.Message),
		CreatedAt:    time.Now().UTC(),
	}

	if err := inq.Validate(); err != nil {
		return SubmitInquiryResult{OK: false, Message: err.Error()}, err
	}

	if deps.InquiryStore == nil {
		return SubmitInquiryResult{OK: false, Message: inquiry.MsgMissingConfig}, errors.New("inquiry store not configured")
	}

	if err := deps.InquiryStore.Insert(ctx, inq); err != nil {
		slog.Error("inquiry_store_failed", "error", err)
		return SubmitInquiryResult{OK: false, Message: storeFailureMessage(err)}, err
	}

	if deps.Sender != nil && deps.NotifyAddress != "" {
		body := fmt.Sprintf("<p>New inquiry from %s &lt;%s&gt;</p><p>Phone: %s<br>Organization: %s</p><p>%s</p>",
			html.EscapeString(inq.Name), html.EscapeString(inq.Email),
			html.EscapeString(inq.Phone), html.EscapeString(inq.Organization),
			html.EscapeString(inq.Message))
		_, err := deps.Sender.Send(ctx, email.SendRequest{
			To:      []string{deps.NotifyAddress},
			Subject: "New contact inquiry",
			HTML:    body,
			ReplyTo: inq.Email,
		})
		if err != nil {
			slog.Error("inquiry_notify_failed", "error", err)
		}
	}

	return SubmitInquiryResult{OK: true, Message: inquiry.MsgReceived}, nil
}

// storeFailureMessage maps a storage error to a fixed user-facing message.
func storeFailureMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such table"):
		return inquiry.MsgMissingTable
	case strings.Contains(msg, "unable to open") || strings.Contains(msg, "database is locked"):
		return inquiry.MsgConnectionFailure
	default:
		return inquiry.MsgGenericFailure
	}
}
