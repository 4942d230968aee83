package ports

import (
	"context"

	"github.com/smartstore/store-system/internal/core/domain"
)

// UserDataManager is the persistence contract for users, keyed by email.
// Every method must be atomic for a single key. Keyed lookups report absence
// through the bool result, never through a zero-value user.
type UserDataManager interface {
	// PersistUser inserts or replaces the user stored under user.Email.
	PersistUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// InsertUser stores the user only if the email is free, otherwise it
	// returns domain.ErrUserExists.
	InsertUser(ctx context.Context, user *domain.User) (*domain.User, error)
	// ReplaceUser overwrites an existing user and reports false, writing
	// nothing, when no user is stored under user.Email.
	ReplaceUser(ctx context.Context, user *domain.User) (*domain.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	DoesUserExist(ctx context.Context, email string) (bool, error)
	// RemoveUser reports whether a record was actually removed.
	RemoveUser(ctx context.Context, email string) (bool, error)
}

// StoreDataManager is the persistence contract for stores, keyed by id.
type StoreDataManager interface {
	PersistStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetStoreByID(ctx context.Context, id string) (*domain.Store, bool, error)
	GetAllStores(ctx context.Context) ([]*domain.Store, error)
	DoesStoreExist(ctx context.Context, id string) (bool, error)
	RemoveStore(ctx context.Context, id string) (bool, error)
}

// ProductDataManager is the persistence contract for products, keyed by id.
type ProductDataManager interface {
	PersistProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, bool, error)
	DoesProductExist(ctx context.Context, id string) (bool, error)
}

// CustomerDataManager is the persistence contract for customers, keyed by id.
type CustomerDataManager interface {
	PersistCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, bool, error)
	DoesCustomerExist(ctx context.Context, id string) (bool, error)
}

// DataManager is the full backing store used by the application.
type DataManager interface {
	UserDataManager
	StoreDataManager
	ProductDataManager
	CustomerDataManager

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Name identifies the backend in logs and readiness output.
	Name() string
}
