package navigation

import "parley/internal/domain/account"

// View identifies one screen of the client. The set is closed; requesting an
// unknown view is a no-op.
type View string

// The closed view set.
const (
	ViewLanding           View = "landing"
	ViewLogin             View = "login"
	ViewAdminLogin        View = "admin_login"
	ViewRegister          View = "register"
	ViewRecoverPassword   View = "recover_password"
	ViewChangePassword    View = "change_password"
	ViewSystemConsole     View = "system_console"
	ViewOrgConsole        View = "org_console"
	ViewMemberDashboard   View = "member_dashboard"
	ViewPersonalDashboard View = "personal_dashboard"
	ViewProfile           View = "profile"
	ViewDebateSetup       View = "debate_setup"
	ViewDebateLobby       View = "debate_lobby"
	ViewDebateArena       View = "debate_arena"
	ViewDebateResults     View = "debate_results"
	ViewCourseDetail      View = "course_detail"
)

// viewInfo describes access rules for one view. A nil roles set means any
// authenticated role may enter.
type viewInfo struct {
	requiresAuth bool
	roles        map[string]bool
}

var views = map[View]viewInfo{
	ViewLanding:         {},
	ViewLogin:           {},
	ViewAdminLogin:      {},
	ViewRegister:        {},
	ViewRecoverPassword: {},
	ViewCourseDetail:    {},

	ViewChangePassword: {requiresAuth: true},
	ViewProfile:        {requiresAuth: true},

	ViewSystemConsole: {requiresAuth: true, roles: roleSet(account.RoleSysAdmin)},
	ViewOrgConsole:    {requiresAuth: true, roles: roleSet(account.RoleOrgAdmin)},

	ViewMemberDashboard:   {requiresAuth: true, roles: roleSet(account.RoleMember)},
	ViewPersonalDashboard: {requiresAuth: true, roles: roleSet(account.RolePersonal)},

	ViewDebateSetup:   {requiresAuth: true, roles: roleSet(account.RoleMember, account.RolePersonal)},
	ViewDebateLobby:   {requiresAuth: true, roles: roleSet(account.RoleMember, account.RolePersonal)},
	ViewDebateArena:   {requiresAuth: true, roles: roleSet(account.RoleMember, account.RolePersonal)},
	ViewDebateResults: {requiresAuth: true, roles: roleSet(account.RoleMember, account.RolePersonal)},
}

func roleSet(roles ...string) map[string]bool {
	set := make(map[string]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

// Known reports whether v is part of the closed view set.
func Known(v View) bool {
	_, ok := views[v]
	return ok
}

// RequiresAuth reports whether a view needs an authenticated session.
func RequiresAuth(v View) bool {
	return views[v].requiresAuth
}

// RoleAllowed reports whether the given role may enter the view.
// Unknown views are never allowed.
func RoleAllowed(v View, role string) bool {
	info, ok := views[v]
	if !ok {
		return false
	}
	if !info.requiresAuth {
		return true
	}
	if info.roles == nil {
		return role != ""
	}
	return info.roles[role]
}

// EntryView returns the designated first view for a freshly authenticated
// role: system administrators land on the system console, organization
// administrators on their console, and everyone else on the landing page.
func EntryView(role string) View {
	switch role {
	case account.RoleSysAdmin:
		return ViewSystemConsole
	case account.RoleOrgAdmin:
		return ViewOrgConsole
	default:
		return ViewLanding
	}
}
