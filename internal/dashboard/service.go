package dashboard

import (
	"time"

	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/auth"
)

const recentUserLimit = 5

// Service aggregates counts over the user store for the management
// dashboard. Everything here is derivable directly from the user table.
type Service struct {
	log        *zap.Logger
	repository auth.Repository
}

type RecentUser struct {
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     auth.Role `json:"role"`
	Status   string    `json:"status"`
	Created  string    `json:"created"`
}

func NewService(log *zap.Logger, repo auth.Repository) *Service {
	return &Service{
		log:        log,
		repository: repo,
	}
}

func (s *Service) Stats() (*auth.StoreStats, error) {
	return s.repository.Stats()
}

// RecentUsers returns the latest-created accounts with a derived display
// status.
func (s *Service) RecentUsers() ([]RecentUser, error) {
	users, err := s.repository.ListRecent(recentUserLimit)
	if err != nil {
		return nil, err
	}

	out := make([]RecentUser, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, RecentUser{
			Username: u.Username,
			Name:     u.FirstName + " " + u.LastName,
			Email:    u.Email,
			Role:     u.Role,
			Status:   u.Status(),
			Created:  u.CreatedAt.Format(time.DateOnly),
		})
	}
	return out, nil
}
