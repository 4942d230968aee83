// Package repository guards the data manager against invalid keys. Blank
// keys resolve to "not found" here and never reach the backing store.
package repository

import (
	"context"
	"strings"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

// UserRepository is the only writer of persisted users.
type UserRepository struct {
	dm ports.UserDataManager
}

func NewUserRepository(dm ports.UserDataManager) *UserRepository {
	return &UserRepository{dm: dm}
}

// Save inserts or replaces the user.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.dm.PersistUser(ctx, user)
}

// Create stores a new user and fails with domain.ErrUserExists when the
// email is already taken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.dm.InsertUser(ctx, user)
}

// Update overwrites an existing user. It never recreates a user that was
// removed in the meantime.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	if user == nil || isBlank(user.Email) {
		return nil, false, nil
	}
	return r.dm.ReplaceUser(ctx, user)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	if isBlank(email) {
		return nil, false, nil
	}
	return r.dm.GetUserByEmail(ctx, email)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	return r.dm.GetAllUsers(ctx)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if isBlank(email) {
		return false, nil
	}
	return r.dm.DoesUserExist(ctx, email)
}

// Delete removes the given user. A nil user or one without an email is ignored.
func (r *UserRepository) Delete(ctx context.Context, user *domain.User) error {
	if user == nil || isBlank(user.Email) {
		return nil
	}
	_, err := r.dm.RemoveUser(ctx, user.Email)
	return err
}

// DeleteByEmail reports whether a user was removed.
func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	if isBlank(email) {
		return false, nil
	}
	return r.dm.RemoveUser(ctx, email)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
