package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisioner_CreateAccount(t *testing.T) {
	tests := []struct {
		name      string
		actor     Role
		firstName string
		lastName  string
		email     string
		target    Role
		setup     func(*testing.T, *Provisioner)
		wantErr   error
		wantUser  string
	}{
		{
			name:      "management creates concierge",
			actor:     RoleManagement,
			firstName: "Jane",
			lastName:  "Doe",
			email:     "jane@x.com",
			target:    RoleConcierge,
			wantUser:  "jane.doe",
		},
		{
			name:      "concierge creates resident",
			actor:     RoleConcierge,
			firstName: "Sam",
			lastName:  "Lee",
			email:     "sam@x.com",
			target:    RoleResident,
			wantUser:  "sam.lee",
		},
		{
			name:      "concierge may not create management",
			actor:     RoleConcierge,
			firstName: "Jane",
			lastName:  "Doe",
			email:     "jane@x.com",
			target:    RoleManagement,
			wantErr:   ErrForbidden,
		},
		{
			name:      "resident may not create anyone",
			actor:     RoleResident,
			firstName: "Jane",
			lastName:  "Doe",
			email:     "jane@x.com",
			target:    RoleResident,
			wantErr:   ErrForbidden,
		},
		{
			name:      "missing fields rejected",
			actor:     RoleManagement,
			firstName: "",
			lastName:  "Doe",
			email:     "jane@x.com",
			target:    RoleResident,
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "duplicate email rejected",
			actor:     RoleManagement,
			firstName: "Jane",
			lastName:  "Doe",
			email:     "jane@x.com",
			target:    RoleResident,
			setup: func(t *testing.T, p *Provisioner) {
				_, err := p.CreateAccount(RoleManagement, "Other", "Person", "jane@x.com", RoleResident)
				require.NoError(t, err)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prov, repo := newTestProvisioner(t)
			if tt.setup != nil {
				tt.setup(t, prov)
			}

			created, err := prov.CreateAccount(tt.actor, tt.firstName, tt.lastName, tt.email, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, created.User.Username)
			assert.Equal(t, tt.target, created.User.Role)
			assert.GreaterOrEqual(t, len(created.TemporaryPassword), 10)

			// The stored record can authenticate with the returned plaintext
			// and retains it until the first password change.
			stored, err := repo.FindByEmail(tt.email)
			require.NoError(t, err)
			assert.True(t, CheckPasswordHash(created.TemporaryPassword, stored.PasswordHash))
			require.NotNil(t, stored.TemporaryPassword)
			assert.Equal(t, created.TemporaryPassword, *stored.TemporaryPassword)
			assert.True(t, stored.IsActive)
			assert.False(t, stored.IsLocked)
		})
	}
}

func TestProvisioner_UsernameCollisions(t *testing.T) {
	prov, _ := newTestProvisioner(t)

	// N accounts with the same name get base, base1, base2... with no gaps.
	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		created, err := prov.CreateAccount(
			RoleManagement, "Jane", "Doe",
			fmt.Sprintf("jane%d@x.com", i), RoleConcierge)
		require.NoError(t, err)

		want := "jane.doe"
		if i > 0 {
			want = fmt.Sprintf("jane.doe%d", i)
		}
		assert.Equal(t, want, created.User.Username)
		assert.False(t, seen[created.User.Username])
		seen[created.User.Username] = true
	}
}

func TestProvisioner_UsernameIsLowercased(t *testing.T) {
	prov, _ := newTestProvisioner(t)

	created, err := prov.CreateAccount(RoleManagement, "JANE", "DOE", "jane@x.com", RoleResident)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", created.User.Username)
}

func TestProvisioner_ListUsers(t *testing.T) {
	prov, repo := newTestProvisioner(t)

	seedUser(t, repo, "mgr@x.com", "pass-mgr", RoleManagement)
	seedUser(t, repo, "con@x.com", "pass-con", RoleConcierge)
	seedUser(t, repo, "res1@x.com", "pass-res1", RoleResident)
	seedUser(t, repo, "res2@x.com", "pass-res2", RoleResident)

	t.Run("management sees all", func(t *testing.T) {
		users, err := prov.ListUsers(RoleManagement)
		require.NoError(t, err)
		assert.Len(t, users, 4)
	})

	t.Run("concierge sees residents only", func(t *testing.T) {
		users, err := prov.ListUsers(RoleConcierge)
		require.NoError(t, err)
		assert.Len(t, users, 2)
		for _, u := range users {
			assert.Equal(t, RoleResident, u.Role)
		}
	})

	t.Run("resident gets forbidden, never partial data", func(t *testing.T) {
		users, err := prov.ListUsers(RoleResident)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, users)
	})

	t.Run("unknown role gets forbidden", func(t *testing.T) {
		_, err := prov.ListUsers(Role("visitor"))
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestProvisioner_UnlockAccount(t *testing.T) {
	prov, repo := newTestProvisioner(t)
	user := seedUser(t, repo, "locked@x.com", "some-pass", RoleResident)
	require.NoError(t, repo.UpdateUser(user.ID, func(u *User) error {
		u.IsLocked = true
		u.FailedLoginAttempts = 3
		return nil
	}))

	t.Run("non-management denied", func(t *testing.T) {
		assert.ErrorIs(t, prov.UnlockAccount(RoleConcierge, "locked@x.com"), ErrForbidden)
		assert.ErrorIs(t, prov.UnlockAccount(RoleResident, "locked@x.com"), ErrForbidden)
	})

	t.Run("unknown email", func(t *testing.T) {
		assert.ErrorIs(t, prov.UnlockAccount(RoleManagement, "ghost@x.com"), ErrNotFound)
	})

	t.Run("unlock is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			require.NoError(t, prov.UnlockAccount(RoleManagement, "locked@x.com"))

			stored, err := repo.FindByID(user.ID)
			require.NoError(t, err)
			assert.False(t, stored.IsLocked)
			assert.Equal(t, 0, stored.FailedLoginAttempts)
		}
	})
}

func TestProvisioner_SetActive(t *testing.T) {
	prov, repo := newTestProvisioner(t)
	user := seedUser(t, repo, "res@x.com", "some-pass", RoleResident)

	t.Run("non-management denied", func(t *testing.T) {
		assert.ErrorIs(t, prov.SetActive(RoleConcierge, "res@x.com", false), ErrForbidden)
	})

	t.Run("deactivate", func(t *testing.T) {
		require.NoError(t, prov.SetActive(RoleManagement, "res@x.com", false))
		stored, err := repo.FindByID(user.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
	})

	t.Run("activate implicitly unlocks", func(t *testing.T) {
		require.NoError(t, repo.UpdateUser(user.ID, func(u *User) error {
			u.IsLocked = true
			u.FailedLoginAttempts = 3
			return nil
		}))

		require.NoError(t, prov.SetActive(RoleManagement, "res@x.com", true))

		stored, err := repo.FindByID(user.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsActive)
		assert.False(t, stored.IsLocked)
		assert.Equal(t, 0, stored.FailedLoginAttempts)
	})
}

func TestProvisioner_LoginWithProvisionedPassword(t *testing.T) {
	repo := newMockRepository()
	prov := NewProvisioner(newTestConfig(), newTestLogger(t), repo)
	svc := newTestServiceWithRepo(t, repo)

	created, err := prov.CreateAccount(RoleManagement, "Jane", "Doe", "jane@x.com", RoleConcierge)
	require.NoError(t, err)

	session, err := svc.Login("jane@x.com", created.TemporaryPassword)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", session.User.Username)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleConcierge, claims.Role)
}
