package auth

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:          "test-secret-key",
		TokenExpiration:    time.Hour,
		LockoutThreshold:   3,
		TempPasswordLength: 10,
		MinPasswordLength:  6,
	}
}

func newTestService(t *testing.T) *Service {
	return NewService(newTestConfig(), newTestLogger(t), newMockRepository())
}

func newTestServiceWithRepo(t *testing.T, repo Repository) *Service {
	return NewService(newTestConfig(), newTestLogger(t), repo)
}

func newTestProvisioner(t *testing.T) (*Provisioner, *mockRepository) {
	repo := newMockRepository()
	return NewProvisioner(newTestConfig(), newTestLogger(t), repo), repo
}

// seedUser creates an account directly in the repository with a known
// password, bypassing provisioning.
func seedUser(t *testing.T, repo *mockRepository, email, password string, role Role) *User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &User{
		Username:     strings.Split(email, "@")[0],
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
