package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/appointment-booker/internal/persistence"
)

// MarkerAdminPolicy grants administrator access to any email containing the
// marker substring. It is a demo rule, not a security boundary.
func MarkerAdminPolicy(marker string) AdminPolicy {
	return func(email string) bool {
		return strings.Contains(email, marker)
	}
}

// AuthService owns the user directory and the single active session.
type AuthService struct {
	users    persistence.UserRepository
	sessions persistence.SessionRepository
	isAdmin  AdminPolicy
	logger   *slog.Logger
}

// NewAuthService wires the directory and session repositories. A nil policy
// falls back to the "admin" marker rule.
func NewAuthService(users persistence.UserRepository, sessions persistence.SessionRepository, isAdmin AdminPolicy, logger *slog.Logger) *AuthService {
	if isAdmin == nil {
		isAdmin = MarkerAdminPolicy("admin")
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		isAdmin:  isAdmin,
		logger:   defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Signup registers a new user and activates a session for it. The admin flag
// is derived once, at creation, from the configured policy; users are
// immutable afterwards.
func (s *AuthService) Signup(ctx context.Context, email string) (user User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("AuthService is nil")
	}

	normalized := normalizeEmail(email)
	logger := s.loggerWith(ctx, "Signup", "email", normalized)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "signup failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "signup succeeded", "is_admin", user.IsAdmin)
	}()

	records, err := s.users.LoadUsers(ctx)
	if err != nil {
		return User{}, mapStorageErr(err)
	}

	for _, record := range records {
		if record.Email == normalized {
			return User{}, ErrDuplicateEmail
		}
	}

	record := persistence.UserRecord{Email: normalized, IsAdmin: s.isAdmin(normalized)}
	if err := s.users.SaveUsers(ctx, append(records, record)); err != nil {
		return User{}, mapStorageErr(err)
	}
	if err := s.sessions.SaveCurrentUser(ctx, record); err != nil {
		return User{}, mapStorageErr(err)
	}

	return User{Email: record.Email, IsAdmin: record.IsAdmin}, nil
}

// Login activates a session for an already registered user.
func (s *AuthService) Login(ctx context.Context, email string) (user User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("AuthService is nil")
	}

	normalized := normalizeEmail(email)
	logger := s.loggerWith(ctx, "Login", "email", normalized)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "login succeeded", "is_admin", user.IsAdmin)
	}()

	records, err := s.users.LoadUsers(ctx)
	if err != nil {
		return User{}, mapStorageErr(err)
	}

	for _, record := range records {
		if record.Email == normalized {
			if err := s.sessions.SaveCurrentUser(ctx, record); err != nil {
				return User{}, mapStorageErr(err)
			}
			return User{Email: record.Email, IsAdmin: record.IsAdmin}, nil
		}
	}

	return User{}, ErrUserNotFound
}

// Logout clears the active session unconditionally. Logging out with no
// session is not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}

	logger := s.loggerWith(ctx, "Logout")
	if err := s.sessions.ClearCurrentUser(ctx); err != nil {
		err = mapStorageErr(err)
		logger.ErrorContext(ctx, "logout failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "session cleared")
	return nil
}

// Current returns the active session, reporting its absence as ok=false.
func (s *AuthService) Current(ctx context.Context) (Session, bool, error) {
	if s == nil {
		return Session{}, false, fmt.Errorf("AuthService is nil")
	}

	record, err := s.sessions.LoadCurrentUser(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Session{}, false, nil
		}
		return Session{}, false, mapStorageErr(err)
	}
	return Session{Email: record.Email, IsAdmin: record.IsAdmin}, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
