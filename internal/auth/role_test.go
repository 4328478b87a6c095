package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name   string
		actor  Role
		target Role
		want   bool
	}{
		{"management creates concierge", RoleManagement, RoleConcierge, true},
		{"management creates resident", RoleManagement, RoleResident, true},
		{"management creates management", RoleManagement, RoleManagement, false},
		{"concierge creates resident", RoleConcierge, RoleResident, true},
		{"concierge creates concierge", RoleConcierge, RoleConcierge, false},
		{"concierge creates management", RoleConcierge, RoleManagement, false},
		{"resident creates resident", RoleResident, RoleResident, false},
		{"unknown actor denied", Role("janitor"), RoleResident, false},
		{"unknown target denied", RoleManagement, Role("janitor"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCreate(tt.actor, tt.target))
		})
	}
}

func TestVisibleScope(t *testing.T) {
	tests := []struct {
		name  string
		actor Role
		want  ListScope
	}{
		{"management sees all", RoleManagement, ScopeAll},
		{"concierge sees residents", RoleConcierge, ScopeResidents},
		{"resident sees nothing", RoleResident, ScopeNone},
		{"unknown role sees nothing", Role(""), ScopeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleScope(tt.actor))
		})
	}
}

func TestCanUnlock(t *testing.T) {
	assert.True(t, CanUnlock(RoleManagement))
	assert.False(t, CanUnlock(RoleConcierge))
	assert.False(t, CanUnlock(RoleResident))
	assert.False(t, CanUnlock(Role("superuser")))
}

func TestAllows_FailsClosed(t *testing.T) {
	caps := []Capability{
		CapAuthenticated,
		CapProvisionAccounts,
		CapListUsers,
		CapUnlockAccounts,
		CapManageAccounts,
		CapViewDashboard,
	}

	for _, cap := range caps {
		assert.False(t, Allows(Role("intruder"), cap), "capability %s", cap)
	}

	assert.False(t, Allows(RoleManagement, Capability("unknown")))
}

func TestAllows_DecisionTable(t *testing.T) {
	tests := []struct {
		actor Role
		cap   Capability
		want  bool
	}{
		{RoleManagement, CapProvisionAccounts, true},
		{RoleConcierge, CapProvisionAccounts, true},
		{RoleResident, CapProvisionAccounts, false},
		{RoleManagement, CapListUsers, true},
		{RoleConcierge, CapListUsers, true},
		{RoleResident, CapListUsers, false},
		{RoleManagement, CapUnlockAccounts, true},
		{RoleConcierge, CapUnlockAccounts, false},
		{RoleManagement, CapManageAccounts, true},
		{RoleConcierge, CapManageAccounts, false},
		{RoleManagement, CapViewDashboard, true},
		{RoleResident, CapViewDashboard, false},
		{RoleResident, CapAuthenticated, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Allows(tt.actor, tt.cap),
			"actor %s capability %s", tt.actor, tt.cap)
	}
}
