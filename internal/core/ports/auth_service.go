package ports

import (
	"context"

	"github.com/smartstore/store-system/internal/core/domain"
)

// AuthService authenticates Basic-Auth credentials and manages user accounts.
// Absence (unknown user, failed authentication) is reported through the bool
// result; errors are reserved for invalid input and backend faults.
type AuthService interface {
	AuthenticateBasic(ctx context.Context, authHeader string) (*domain.User, bool, error)
	RegisterUser(ctx context.Context, email, password, name string) (*domain.User, error)
	RegisterUserWithRole(ctx context.Context, email, password, name, role string) (*domain.User, error)
	UserExists(ctx context.Context, email string) (bool, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	// UpdateUser patches password and/or name. Blank values keep the stored field.
	UpdateUser(ctx context.Context, email, newPassword, newName string) (*domain.User, bool, error)
	DeleteUser(ctx context.Context, email string) (bool, error)
}
