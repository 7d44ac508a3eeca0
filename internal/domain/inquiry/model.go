package inquiry

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// User-facing result messages. Lower-level failures are always mapped to one
// of these; raw errors never reach the end user.
const (
	MsgReceived          = "Thanks for reaching out. We'll be in touch shortly."
	MsgMissingConfig     = "Inquiry service is not configured. Please try again later."
	MsgMissingTable      = "Inquiry storage is not set up. Please try again later."
	MsgConnectionFailure = "Could not reach the inquiry service. Please check your connection."
	MsgGenericFailure    = "Something went wrong submitting your inquiry. Please try again."
)

// Domain errors
var (
	ErrEmptyName    = errors.New("name is required")
	ErrEmptyEmail   = errors.New("email is required")
	ErrInvalidEmail = errors.New("email address looks invalid")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Inquiry is one contact-form submission from the marketing site.
type Inquiry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks required fields and email shape locally, before any
// store write is attempted.
// PRE: Inquiry struct is populated from user input
// POST: Returns error if validation fails, nil otherwise
func (i *Inquiry) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(i.Email) == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(i.Email) {
		return ErrInvalidEmail
	}
	return nil
}
