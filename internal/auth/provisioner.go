package auth

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/config"
)

// Provisioner creates and administers accounts under the role decision
// table.
type Provisioner struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
	lockout    LockoutPolicy
}

// ProvisionedUser carries the one-time plaintext of the generated password
// alongside the created record.
type ProvisionedUser struct {
	User              UserView `json:"user"`
	TemporaryPassword string   `json:"temporary_password"`
}

func NewProvisioner(config *config.AuthConfig, log *zap.Logger, repo Repository) *Provisioner {
	return &Provisioner{
		config:     config,
		log:        log,
		repository: repo,
		lockout:    NewLockoutPolicy(config.LockoutThreshold),
	}
}

// CreateAccount provisions a new account with a generated username and
// temporary password. The plaintext is returned exactly once for
// out-of-band delivery and retained on the record until the user's first
// password change.
func (p *Provisioner) CreateAccount(actor Role, firstName, lastName, email string, target Role) (*ProvisionedUser, error) {
	if !CanCreate(actor, target) {
		return nil, ErrForbidden
	}
	if firstName == "" || lastName == "" || email == "" || target == "" {
		return nil, ErrInvalidInput
	}

	exists, err := p.repository.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	username, err := p.generateUsername(firstName, lastName)
	if err != nil {
		return nil, err
	}

	tempPassword, err := GeneratePassword(p.config.TempPasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:          username,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		Role:              target,
		PasswordHash:      hash,
		TemporaryPassword: &tempPassword,
		IsActive:          true,
	}

	// The unique constraints are the last word: two concurrent calls racing
	// on the same derived username or email surface as a conflict here.
	if err := p.repository.Create(user); err != nil {
		return nil, err
	}

	p.log.Info("account provisioned",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return &ProvisionedUser{
		User:              user.View(),
		TemporaryPassword: tempPassword,
	}, nil
}

// generateUsername derives first.last, probing numeric suffixes 1, 2, 3...
// until an unused name is found.
func (p *Provisioner) generateUsername(firstName, lastName string) (string, error) {
	base := strings.ToLower(firstName) + "." + strings.ToLower(lastName)
	username := base
	for counter := 1; ; counter++ {
		taken, err := p.repository.ExistsByUsername(username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}

// ListUsers returns the users visible to the actor role. Residents get
// Forbidden, never partial data.
func (p *Provisioner) ListUsers(actor Role) ([]UserView, error) {
	var (
		users []User
		err   error
	)
	switch VisibleScope(actor) {
	case ScopeAll:
		users, err = p.repository.ListAll()
	case ScopeResidents:
		users, err = p.repository.ListByRole(RoleResident)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return views, nil
}

// UnlockAccount clears a lock set by the lockout policy. Management only,
// idempotent.
func (p *Provisioner) UnlockAccount(actor Role, email string) error {
	if !CanUnlock(actor) {
		return ErrForbidden
	}
	if email == "" {
		return ErrInvalidInput
	}

	user, err := p.repository.FindByEmail(email)
	if err != nil {
		return err
	}

	return p.repository.UpdateUser(user.ID, func(u *User) error {
		*u = p.lockout.Unlock(*u)
		return nil
	})
}

// SetActive activates or deactivates an account. Activation implicitly
// unlocks; a deactivated user cannot authenticate regardless of password.
func (p *Provisioner) SetActive(actor Role, email string, active bool) error {
	if !Allows(actor, CapManageAccounts) {
		return ErrForbidden
	}
	if email == "" {
		return ErrInvalidInput
	}

	user, err := p.repository.FindByEmail(email)
	if err != nil {
		return err
	}

	return p.repository.UpdateUser(user.ID, func(u *User) error {
		if active {
			*u = p.lockout.Activate(*u)
		} else {
			*u = p.lockout.Deactivate(*u)
		}
		return nil
	})
}

// FindUser returns the view of a single user by id, for the
// current-actor endpoint.
func (p *Provisioner) FindUser(id uint) (*UserView, error) {
	user, err := p.repository.FindByID(id)
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}
