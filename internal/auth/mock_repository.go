package auth

import (
	"sort"
	"sync"
	"time"
)

// mockRepository is an in-memory Repository for tests. It mirrors the
// store's contract: unique username/email, snapshot reads, serialized
// read-modify-write per record.
type mockRepository struct {
	users  map[uint]*User
	nextID uint
	mu     sync.RWMutex
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:  make(map[uint]*User),
		nextID: 1,
	}
}

func (r *mockRepository) Create(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrConflict
		}
	}

	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *mockRepository) Save(user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return ErrNotFound
	}
	stored := *user
	r.users[stored.ID] = &stored
	return nil
}

func (r *mockRepository) findBy(match func(*User) bool) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			snapshot := *u
			return &snapshot, nil
		}
	}
	return nil, ErrNotFound
}

func (r *mockRepository) FindByEmail(email string) (*User, error) {
	return r.findBy(func(u *User) bool { return u.Email == email })
}

func (r *mockRepository) FindByUsername(username string) (*User, error) {
	return r.findBy(func(u *User) bool { return u.Username == username })
}

func (r *mockRepository) FindByID(id uint) (*User, error) {
	return r.findBy(func(u *User) bool { return u.ID == id })
}

func (r *mockRepository) ExistsByEmail(email string) (bool, error) {
	_, err := r.FindByEmail(email)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *mockRepository) ExistsByUsername(username string) (bool, error) {
	_, err := r.FindByUsername(username)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *mockRepository) list(match func(*User) bool) []User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []User
	for _, u := range r.users {
		if match(u) {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users
}

func (r *mockRepository) ListAll() ([]User, error) {
	return r.list(func(*User) bool { return true }), nil
}

func (r *mockRepository) ListByRole(role Role) ([]User, error) {
	return r.list(func(u *User) bool { return u.Role == role }), nil
}

func (r *mockRepository) ListRecent(limit int) ([]User, error) {
	users := r.list(func(*User) bool { return true })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *mockRepository) UpdateUser(id uint, apply func(*User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return ErrNotFound
	}

	updated := *user
	if err := apply(&updated); err != nil {
		return err
	}
	r.users[id] = &updated
	return nil
}

func (r *mockRepository) Stats() (*StoreStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &StoreStats{}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, u := range r.users {
		stats.TotalUsers++
		if u.IsActive {
			stats.ActiveUsers++
		}
		if u.IsLocked {
			stats.LockedUsers++
		}
		if u.CreatedAt.After(weekAgo) {
			stats.RecentUsers++
		}
		switch u.Role {
		case RoleManagement:
			stats.ManagementCount++
		case RoleConcierge:
			stats.ConciergeCount++
		case RoleResident:
			stats.ResidentCount++
		}
	}
	return stats, nil
}
