package navigation

// Outcome reports how a view request was resolved.
type Outcome string

const (
	// Granted means the controller committed the requested view.
	Granted Outcome = "granted"
	// RedirectedToLogin means the request needed authentication; the
	// requested view was recorded as the intended destination.
	RedirectedToLogin Outcome = "redirected_to_login"
	// Denied means the session's role may not enter the view. The current
	// view is unchanged; no error is raised beyond this outcome.
	Denied Outcome = "denied"
	// Ignored means the view is not part of the closed set.
	Ignored Outcome = "ignored"
)

// Controller is the per-client navigation state machine. Exactly one
// instance exists per running client; it is carried inside the client's
// session and replaced wholesale on login and logout.
type Controller struct {
	Current       View   `json:"current"`
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Intended      View   `json:"intended,omitempty"`

	// MustChangePassword pins the client to the change-password view
	// until a new secret has been set (first-login branch).
	MustChangePassword bool `json:"must_change_password,omitempty"`
}

// New returns a controller for a fresh, unauthenticated client.
func New() Controller {
	return Controller{Current: ViewLanding}
}

// RequestView asks the controller to move to v.
// PRE: controller is initialized
// POST: Current is v when granted; on a missing session the controller
//
//	moves to the login view and records v as Intended
//
// INVARIANT: an unauthenticated request for a protected view never errors,
//
//	it redirects
func (c *Controller) RequestView(v View) Outcome {
	if !Known(v) {
		return Ignored
	}
	if c.MustChangePassword && v != ViewChangePassword {
		// One-time forced sub-state: everything funnels back until a
		// new password is set.
		c.Current = ViewChangePassword
		c.Intended = v
		return Denied
	}
	if RequiresAuth(v) && !c.Authenticated {
		c.Current = ViewLogin
		c.Intended = v
		return RedirectedToLogin
	}
	if !RoleAllowed(v, c.roleOrAnonymous()) {
		return Denied
	}
	c.Current = v
	c.Intended = ""
	return Granted
}

// LoginSucceeded records a successful credential check and moves the client
// to its destination: the forced change-password sub-state when flagged, the
// intended view recorded before the redirect when permitted, or the role's
// entry view.
// PRE: role is a stored, verified role value
// POST: Authenticated is true, Role is set, Current is the destination
func (c *Controller) LoginSucceeded(role string, mustChangePassword bool) View {
	c.Authenticated = true
	c.Role = role
	c.MustChangePassword = mustChangePassword

	if mustChangePassword {
		c.Current = ViewChangePassword
		return c.Current
	}
	if c.Intended != "" && RoleAllowed(c.Intended, role) {
		c.Current = c.Intended
		c.Intended = ""
		return c.Current
	}
	c.Intended = ""
	c.Current = EntryView(role)
	return c.Current
}

// PasswordChanged clears the forced change-password sub-state and releases
// the client to its pending destination.
// PRE: MustChangePassword was set
// POST: client is on the intended view or the role's entry view
func (c *Controller) PasswordChanged() View {
	c.MustChangePassword = false
	if c.Intended != "" && RoleAllowed(c.Intended, c.Role) {
		c.Current = c.Intended
		c.Intended = ""
		return c.Current
	}
	c.Current = EntryView(c.Role)
	return c.Current
}

// Logout resets the controller unconditionally. This is a hard reset, not a
// graceful teardown.
// POST: unauthenticated, no role, landing view, no intended view
func (c *Controller) Logout() {
	*c = New()
}

func (c *Controller) roleOrAnonymous() string {
	if !c.Authenticated {
		return ""
	}
	return c.Role
}
