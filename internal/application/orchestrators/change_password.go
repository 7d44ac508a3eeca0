package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"parley/internal/domain/account"
)

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	AccountID       string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	AccountStore AccountStoreForPasswordChange
}

// AccountStoreForPasswordChange defines the store interface needed by
// ExecuteChangePassword.
type AccountStoreForPasswordChange interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

var ErrSamePassword = errors.New("new password must differ from the current password")

// ExecuteChangePassword verifies the current password and replaces it.
// PRE: AccountID identifies an existing account
// POST: Password hash is replaced and PasswordChangeRequired is cleared
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := acct.CheckPassword(input.CurrentPassword); err != nil {
		slog.Info("auth_event", "event", "password_change_failed", "email", acct.Email, "reason", "wrong_current")
		return ErrInvalidCredentials
	}

	if input.CurrentPassword == input.NewPassword {
		return ErrSamePassword
	}

	if err := acct.SetPassword(input.NewPassword); err != nil {
		return err
	}
	acct.PasswordChangeRequired = false
	acct.ResetFailedLogins()

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "password_changed", "email", acct.Email)
	return nil
}
