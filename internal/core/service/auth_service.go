package service

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
	"github.com/smartstore/store-system/internal/core/repository"
)

const basicScheme = "Basic "

// AuthService implements Basic-Auth verification and user account management.
type AuthService struct {
	users  *repository.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
	now    func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users *repository.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AuthenticateBasic resolves a "Basic base64(email:password)" header to a user.
// Every malformed header, unknown email and wrong password yields the same
// (nil, false, nil) result so callers cannot tell them apart. Only backend
// faults are returned as errors.
func (s *AuthService) AuthenticateBasic(ctx context.Context, authHeader string) (*domain.User, bool, error) {
	email, password, ok := parseBasicHeader(authHeader)
	if !ok {
		return nil, false, nil
	}

	user, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("authenticate: %w", err)
	}
	if !found || user.PasswordHash == "" {
		return nil, false, nil
	}

	if !s.passwordMatches(password, user.PasswordHash) {
		return nil, false, nil
	}
	return user, true, nil
}

// passwordMatches checks hashed records with the hasher and records stored
// before hashing was introduced by direct comparison.
func (s *AuthService) passwordMatches(plaintext, stored string) bool {
	if s.hasher.IsHashed(stored) {
		return s.hasher.Verify(plaintext, stored)
	}
	return subtle.ConstantTimeCompare([]byte(plaintext), []byte(stored)) == 1
}

// parseBasicHeader decodes the credential pair. The password keeps any
// colons after the first one.
func parseBasicHeader(header string) (email, password string, ok bool) {
	if !strings.HasPrefix(header, basicScheme) {
		return "", "", false
	}
	encoded := strings.TrimSpace(header[len(basicScheme):])
	if encoded == "" {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	email, password, ok = strings.Cut(string(decoded), ":")
	if !ok || email == "" {
		return "", "", false
	}
	return email, password, true
}

// RegisterUser creates an account with the USER role.
func (s *AuthService) RegisterUser(ctx context.Context, email, password, name string) (*domain.User, error) {
	return s.RegisterUserWithRole(ctx, email, password, name, string(domain.RoleUser))
}

// RegisterUserWithRole creates an account. The role string is parsed with
// domain.ParseRole, so an unrecognised role registers a USER.
func (s *AuthService) RegisterUserWithRole(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	if err := requireFields(
		field{"email", email},
		field{"password", password},
		field{"name", name},
		field{"role", role},
	); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if exists {
		return nil, &domain.DuplicateUserError{Email: email}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	assigned := domain.ParseRole(role)
	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         assigned,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, &domain.DuplicateUserError{Email: email}
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info().Str("email", email).Str("role", string(assigned)).Msg("user registered")
	return created, nil
}

func (s *AuthService) UserExists(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	return s.users.ExistsByEmail(ctx, email)
}

func (s *AuthService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	if strings.TrimSpace(email) == "" {
		return nil, false, nil
	}
	return s.users.FindByEmail(ctx, email)
}

// UpdateUser applies a selective patch: blank newPassword or newName leave the
// stored value alone. The role is never changed here.
func (s *AuthService) UpdateUser(ctx context.Context, email, newPassword, newName string) (*domain.User, bool, error) {
	if strings.TrimSpace(email) == "" {
		return nil, false, nil
	}

	user, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("update user: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	changed := false
	if strings.TrimSpace(newPassword) != "" {
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return nil, false, fmt.Errorf("update user: %w", err)
		}
		user.PasswordHash = hash
		changed = true
	}
	if strings.TrimSpace(newName) != "" {
		user.Name = newName
		changed = true
	}
	if !changed {
		return user, true, nil
	}

	user.UpdatedAt = s.now()
	saved, found, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("update user: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	s.logger.Info().Str("email", email).Msg("user updated")
	return saved, true, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	deleted, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if deleted {
		s.logger.Info().Str("email", email).Msg("user deleted")
	}
	return deleted, nil
}

type field struct {
	name  string
	value string
}

// requireFields returns a ValidationError for the first blank field.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.NewRequiredError(f.name)
		}
	}
	return nil
}
