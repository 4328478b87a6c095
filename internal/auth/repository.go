package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreStats are the dashboard counts derivable from the user table.
type StoreStats struct {
	TotalUsers      int64 `json:"total_users"`
	ActiveUsers     int64 `json:"active_users"`
	LockedUsers     int64 `json:"locked_users"`
	RecentUsers     int64 `json:"recent_users"`
	ManagementCount int64 `json:"management_count"`
	ConciergeCount  int64 `json:"concierge_count"`
	ResidentCount   int64 `json:"resident_count"`
}

type Repository interface {
	Create(user *User) error
	Save(user *User) error
	FindByEmail(email string) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByID(id uint) (*User, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByUsername(username string) (bool, error)
	ListAll() ([]User, error)
	ListByRole(role Role) ([]User, error)
	ListRecent(limit int) ([]User, error)
	// UpdateUser applies a read-modify-write under a per-row lock so that
	// concurrent failed-login increments never lose updates.
	UpdateUser(id uint, apply func(*User) error) error
	Stats() (*StoreStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// storeErr translates driver errors into the core taxonomy. Uniqueness is
// enforced by the database constraint, not by check-then-insert.
func storeErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func (r *repository) Create(user *User) error {
	if err := r.db.Create(user).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *repository) Save(user *User) error {
	if err := r.db.Save(user).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *repository) findOne(query string, arg interface{}) (*User, error) {
	var user User
	if err := r.db.Where(query, arg).First(&user).Error; err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

func (r *repository) FindByEmail(email string) (*User, error) {
	return r.findOne("email = ?", email)
}

func (r *repository) FindByUsername(username string) (*User, error) {
	return r.findOne("username = ?", username)
}

func (r *repository) FindByID(id uint) (*User, error) {
	return r.findOne("id = ?", id)
}

func (r *repository) exists(query string, arg interface{}) (bool, error) {
	var count int64
	if err := r.db.Model(&User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (r *repository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email = ?", email)
}

func (r *repository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username = ?", username)
}

func (r *repository) ListAll() ([]User, error) {
	var users []User
	if err := r.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (r *repository) ListByRole(role Role) ([]User, error) {
	var users []User
	if err := r.db.Where("role = ?", role).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (r *repository) ListRecent(limit int) ([]User, error) {
	var users []User
	if err := r.db.Order("created_at desc").Limit(limit).Find(&users).Error; err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (r *repository) UpdateUser(id uint, apply func(*User) error) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if err := apply(&user); err != nil {
			return err
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidCredentials) ||
			errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrForbidden) {
			return err
		}
		return storeErr(err)
	}
	return nil
}

func (r *repository) Stats() (*StoreStats, error) {
	stats := &StoreStats{}
	weekAgo := time.Now().AddDate(0, 0, -7)

	counts := []struct {
		dest  *int64
		query func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalUsers, func(db *gorm.DB) *gorm.DB { return db }},
		{&stats.ActiveUsers, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }},
		{&stats.LockedUsers, func(db *gorm.DB) *gorm.DB { return db.Where("is_locked = ?", true) }},
		{&stats.RecentUsers, func(db *gorm.DB) *gorm.DB { return db.Where("created_at >= ?", weekAgo) }},
		{&stats.ManagementCount, func(db *gorm.DB) *gorm.DB { return db.Where("role = ?", RoleManagement) }},
		{&stats.ConciergeCount, func(db *gorm.DB) *gorm.DB { return db.Where("role = ?", RoleConcierge) }},
		{&stats.ResidentCount, func(db *gorm.DB) *gorm.DB { return db.Where("role = ?", RoleResident) }},
	}

	for _, c := range counts {
		if err := c.query(r.db.Model(&User{})).Count(c.dest).Error; err != nil {
			return nil, storeErr(err)
		}
	}

	return stats, nil
}
