package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	accountStore "parley/internal/adapters/storage/account"
	"parley/internal/domain/account"
)

// Login scopes. The scope is the login surface the user chose; it gates
// which roles may authenticate there but never decides the role itself.
// The role always comes from the stored credential record.
const (
	ScopePersonal       = "personal"
	ScopeOrganization   = "organization"
	ScopeAdministrative = "administrative"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	GetByMemberID(ctx context.Context, memberID int64) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginInput carries input for the login orchestrator. Identifier is an
// email address, or a member roll number on the organization scope.
type LoginInput struct {
	Identifier string
	Password   string
	Scope      string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID              string
	Email                  string
	Role                   string
	OrgID                  int64
	MemberID               int64
	PasswordChangeRequired bool
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

// Orchestrator errors. Invalid credentials are reported explicitly rather
// than silently refusing to transition.
var (
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// scopeAdmits maps each login scope to the roles it may authenticate.
var scopeAdmits = map[string]map[string]bool{
	ScopePersonal:       {account.RolePersonal: true},
	ScopeOrganization:   {account.RoleMember: true},
	ScopeAdministrative: {account.RoleSysAdmin: true, account.RoleOrgAdmin: true},
}

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Identifier, Password and Scope are provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Role is read from the stored record only; the scope merely
//
//	gates which roles the chosen login surface admits
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Identifier == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}
	admits, ok := scopeAdmits[input.Scope]
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := lookupAccount(ctx, deps.AccountStore, input)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "identifier", input.Identifier, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if !admits[acct.Role] {
		slog.Info("auth_event", "event", "login_failed", "identifier", input.Identifier, "reason", "scope_mismatch", "scope", input.Scope)
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.Status == account.StatusDisabled {
		slog.Info("auth_event", "event", "login_blocked", "identifier", input.Identifier, "reason", "disabled")
		return LoginResult{}, ErrAccountDisabled
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "identifier", input.Identifier, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "identifier", input.Identifier, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	// Successful login resets the failure counter.
	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "email", acct.Email, "role", acct.Role)

	return LoginResult{
		AccountID:              acct.ID,
		Email:                  acct.Email,
		Role:                   acct.Role,
		OrgID:                  acct.OrgID,
		MemberID:               acct.MemberID,
		PasswordChangeRequired: acct.PasswordChangeRequired,
	}, nil
}

// lookupAccount resolves the identifier to a credential record. On the
// organization scope, a purely numeric identifier is treated as a member
// roll number.
func lookupAccount(ctx context.Context, store AccountStoreForLogin, input LoginInput) (account.Account, error) {
	id := strings.TrimSpace(input.Identifier)
	if input.Scope == ScopeOrganization && !strings.Contains(id, "@") {
		if roll, err := strconv.ParseInt(id, 10, 64); err == nil {
			return store.GetByMemberID(ctx, roll)
		}
	}
	return store.GetByEmail(ctx, id)
}

// Interface check against the concrete store.
var _ AccountStoreForLogin = (*accountStore.CollectionStore)(nil)
