package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/config"
)

// Service authenticates credentials and owns the session token lifecycle.
type Service struct {
	config     *config.AuthConfig
	log        *zap.Logger
	repository Repository
	lockout    LockoutPolicy
}

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Session is the proof of authentication handed to the caller.
type Session struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

func NewService(config *config.AuthConfig, log *zap.Logger, repo Repository) *Service {
	return &Service{
		config:     config,
		log:        log,
		repository: repo,
		lockout:    NewLockoutPolicy(config.LockoutThreshold),
	}
}

// Login verifies credentials and issues a session token.
//
// Unknown email and wrong password return the same error so responses carry
// no account-existence oracle, and a failure that trips the lock is reported
// like any other: the lock only becomes visible on the next attempt.
func (s *Service) Login(email, password string) (*Session, error) {
	user, err := s.repository.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.HashPassword("dummy") // Prevent timing attacks
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrDeactivated
	}
	if user.IsLocked {
		return nil, ErrLocked
	}

	if !s.CheckPasswordHash(password, user.PasswordHash) {
		if err := s.repository.UpdateUser(user.ID, func(u *User) error {
			*u = s.lockout.OnFailedAttempt(*u)
			return nil
		}); err != nil {
			s.log.Error("failed to record login attempt",
				zap.Uint("user_id", user.ID),
				zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.repository.UpdateUser(user.ID, func(u *User) error {
		*u = s.lockout.OnSuccess(*u)
		return nil
	}); err != nil {
		s.log.Error("failed to reset login attempts",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}

	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.View(),
	}, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (s *Service) CheckPasswordHash(password, hash string) bool {
	return CheckPasswordHash(password, hash)
}

// GenerateToken issues a signed token carrying the user's id as subject and
// the role claim trusted by the guard.
func (s *Service) GenerateToken(user *User) (string, time.Time, error) {
	expirationTime := time.Now().Add(s.config.TokenExpiration)
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expirationTime, nil
}

// ValidateToken parses and verifies a token. Malformed, tampered and
// expired tokens are indistinguishable to the caller.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ChangePassword verifies the current password, enforces the minimum length
// on the new one, and clears any retained temporary password.
func (s *Service) ChangePassword(userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < s.config.MinPasswordLength {
		return ErrInvalidInput
	}

	return s.repository.UpdateUser(userID, func(u *User) error {
		if !s.CheckPasswordHash(currentPassword, u.PasswordHash) {
			return ErrInvalidCredentials
		}
		hash, err := s.HashPassword(newPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		u.TemporaryPassword = nil
		return nil
	})
}
