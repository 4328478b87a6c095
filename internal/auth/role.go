package auth

// Role is the closed set of account roles. Anything outside the enumeration
// is denied everything.
type Role string

const (
	RoleManagement Role = "management"
	RoleConcierge  Role = "concierge"
	RoleResident   Role = "resident"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManagement, RoleConcierge, RoleResident:
		return true
	}
	return false
}

// Capability names a privileged operation checked by the authorization guard.
type Capability string

const (
	// CapAuthenticated requires only a valid session, any role.
	CapAuthenticated     Capability = "authenticated"
	CapProvisionAccounts Capability = "provision_accounts"
	CapListUsers         Capability = "list_users"
	CapUnlockAccounts    Capability = "unlock_accounts"
	CapManageAccounts    Capability = "manage_accounts"
	CapViewDashboard     Capability = "view_dashboard"
)

// ListScope bounds which users an actor may see.
type ListScope int

const (
	ScopeNone ListScope = iota
	ScopeResidents
	ScopeAll
)

// CanCreate reports whether an actor may provision an account with the
// target role. Management creates concierges and residents, concierges
// create residents, residents create nobody.
func CanCreate(actor, target Role) bool {
	switch actor {
	case RoleManagement:
		return target == RoleConcierge || target == RoleResident
	case RoleConcierge:
		return target == RoleResident
	}
	return false
}

// VisibleScope returns the listing scope for an actor role.
func VisibleScope(actor Role) ListScope {
	switch actor {
	case RoleManagement:
		return ScopeAll
	case RoleConcierge:
		return ScopeResidents
	}
	return ScopeNone
}

// CanUnlock reports whether an actor may clear an account lock.
func CanUnlock(actor Role) bool {
	return actor == RoleManagement
}

// Allows is the capability decision table. Unknown roles and unknown
// capabilities are denied.
func Allows(actor Role, cap Capability) bool {
	switch cap {
	case CapAuthenticated:
		return actor.Valid()
	case CapProvisionAccounts:
		return actor == RoleManagement || actor == RoleConcierge
	case CapListUsers:
		return VisibleScope(actor) != ScopeNone
	case CapUnlockAccounts, CapManageAccounts, CapViewDashboard:
		return actor == RoleManagement
	}
	return false
}
