package navigation_test

import (
	"testing"

	"parley/internal/domain/account"
	"parley/internal/domain/navigation"
)

// TestController_RequestView_Anonymous covers the unauthenticated paths:
// public views are granted, protected views redirect and record intent,
// unknown views are ignored.
func TestController_RequestView_Anonymous(t *testing.T) {
	tests := []struct {
		name        string
		view        navigation.View
		wantOutcome navigation.Outcome
		wantCurrent navigation.View
	}{
		{"landing is public", navigation.ViewLanding, navigation.Granted, navigation.ViewLanding},
		{"login is public", navigation.ViewLogin, navigation.Granted, navigation.ViewLogin},
		{"register is public", navigation.ViewRegister, navigation.Granted, navigation.ViewRegister},
		{"console redirects", navigation.ViewSystemConsole, navigation.RedirectedToLogin, navigation.ViewLogin},
		{"dashboard redirects", navigation.ViewMemberDashboard, navigation.RedirectedToLogin, navigation.ViewLogin},
		{"unknown is ignored", navigation.View("settings"), navigation.Ignored, navigation.ViewLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := navigation.New()
			outcome := c.RequestView(tt.view)
			if outcome != tt.wantOutcome {
				t.Errorf("outcome=%q want %q", outcome, tt.wantOutcome)
			}
			if c.Current != tt.wantCurrent {
				t.Errorf("current=%q want %q", c.Current, tt.wantCurrent)
			}
			if outcome == navigation.RedirectedToLogin && c.Intended != tt.view {
				t.Errorf("intended=%q want %q", c.Intended, tt.view)
			}
		})
	}
}

// TestController_LoginSucceeded_EntryViews verifies each role lands on its
// entry view when no intent was recorded.
func TestController_LoginSucceeded_EntryViews(t *testing.T) {
	tests := []struct {
		role string
		want navigation.View
	}{
		{account.RoleSysAdmin, navigation.ViewSystemConsole},
		{account.RoleOrgAdmin, navigation.ViewOrgConsole},
		{account.RoleMember, navigation.ViewLanding},
		{account.RolePersonal, navigation.ViewLanding},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			c := navigation.New()
			view := c.LoginSucceeded(tt.role, false)
			if view != tt.want {
				t.Errorf("view=%q want %q", view, tt.want)
			}
			if !c.Authenticated || c.Role != tt.role {
				t.Errorf("state not authenticated as %s: %+v", tt.role, c)
			}
		})
	}
}

// TestController_LoginSucceeded_HonorsIntent verifies a recorded intent is
// replayed after login when the role allows it.
func TestController_LoginSucceeded_HonorsIntent(t *testing.T) {
	c := navigation.New()
	if outcome := c.RequestView(navigation.ViewProfile); outcome != navigation.RedirectedToLogin {
		t.Fatalf("outcome=%q want redirect", outcome)
	}

	view := c.LoginSucceeded(account.RoleMember, false)
	if view != navigation.ViewProfile {
		t.Errorf("view=%q want the intended profile view", view)
	}
	if c.Intended != "" {
		t.Errorf("intended=%q want cleared", c.Intended)
	}
}

// TestController_LoginSucceeded_DropsForbiddenIntent verifies an intent the
// role may not enter falls back to the entry view.
func TestController_LoginSucceeded_DropsForbiddenIntent(t *testing.T) {
	c := navigation.New()
	c.RequestView(navigation.ViewSystemConsole)

	view := c.LoginSucceeded(account.RoleMember, false)
	if view == navigation.ViewSystemConsole {
		t.Fatal("member entered the system console via recorded intent")
	}
	if view != navigation.EntryView(account.RoleMember) {
		t.Errorf("view=%q want entry view", view)
	}
}

// TestController_ForcedPasswordChange covers the first-login sub-state:
// everything funnels to change-password until PasswordChanged.
func TestController_ForcedPasswordChange(t *testing.T) {
	c := navigation.New()
	c.RequestView(navigation.ViewMemberDashboard)

	view := c.LoginSucceeded(account.RoleMember, true)
	if view != navigation.ViewChangePassword {
		t.Fatalf("view=%q want change-password", view)
	}

	if outcome := c.RequestView(navigation.ViewProfile); outcome != navigation.Denied {
		t.Errorf("outcome=%q, the sub-state must deny other views", outcome)
	}
	if c.Current != navigation.ViewChangePassword {
		t.Errorf("current=%q want pinned to change-password", c.Current)
	}

	released := c.PasswordChanged()
	if c.MustChangePassword {
		t.Error("MustChangePassword still set after PasswordChanged")
	}
	if released != navigation.ViewProfile {
		t.Errorf("released=%q want the pending profile view", released)
	}
}

// TestController_RoleDenied verifies a granted login cannot cross into
// another role's console.
func TestController_RoleDenied(t *testing.T) {
	c := navigation.New()
	c.LoginSucceeded(account.RoleMember, false)

	if outcome := c.RequestView(navigation.ViewSystemConsole); outcome != navigation.Denied {
		t.Errorf("outcome=%q want denied", outcome)
	}
	if c.Current == navigation.ViewSystemConsole {
		t.Error("denied request still moved the current view")
	}
}

// TestController_Logout verifies the hard reset.
func TestController_Logout(t *testing.T) {
	c := navigation.New()
	c.LoginSucceeded(account.RoleSysAdmin, false)
	c.RequestView(navigation.ViewOrgConsole)

	c.Logout()
	if c.Authenticated || c.Role != "" || c.Intended != "" {
		t.Errorf("logout left state behind: %+v", c)
	}
	if c.Current != navigation.ViewLanding {
		t.Errorf("current=%q want landing", c.Current)
	}
}

// TestController_DebateFlow walks the four debate sub-views in order.
func TestController_DebateFlow(t *testing.T) {
	c := navigation.New()
	c.LoginSucceeded(account.RolePersonal, false)

	for _, v := range []navigation.View{
		navigation.ViewDebateSetup,
		navigation.ViewDebateLobby,
		navigation.ViewDebateArena,
		navigation.ViewDebateResults,
	} {
		if outcome := c.RequestView(v); outcome != navigation.Granted {
			t.Fatalf("RequestView(%q)=%q want granted", v, outcome)
		}
	}
}
