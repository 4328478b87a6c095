package auth

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	Role         Role   `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	// TemporaryPassword holds the generated plaintext until the user's first
	// self-service password change. Product decision: recoverable for
	// out-of-band delivery, cleared on ChangePassword.
	TemporaryPassword   *string
	IsActive            bool `gorm:"default:true"`
	IsLocked            bool `gorm:"default:false"`
	FailedLoginAttempts int  `gorm:"default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (User) TableName() string {
	return "users"
}

// UserView is the read-only projection returned by listing and dashboard
// operations. It never carries password material.
type UserView struct {
	ID                  uint      `json:"id"`
	Username            string    `json:"username"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Email               string    `json:"email"`
	Role                Role      `json:"role"`
	IsActive            bool      `json:"is_active"`
	IsLocked            bool      `json:"is_locked"`
	FailedLoginAttempts int       `json:"failed_login_attempts"`
	CreatedAt           time.Time `json:"created_at"`
}

func (u *User) View() UserView {
	return UserView{
		ID:                  u.ID,
		Username:            u.Username,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Role:                u.Role,
		IsActive:            u.IsActive,
		IsLocked:            u.IsLocked,
		FailedLoginAttempts: u.FailedLoginAttempts,
		CreatedAt:           u.CreatedAt,
	}
}

// Status derives the display status used by the dashboard. A locked account
// reports locked even if it has also been deactivated.
func (u *User) Status() string {
	switch {
	case u.IsLocked:
		return "locked"
	case !u.IsActive:
		return "inactive"
	default:
		return "active"
	}
}
