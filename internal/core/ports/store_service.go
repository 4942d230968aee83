package ports

import (
	"context"

	"github.com/smartstore/store-system/internal/core/domain"
)

// ProvisionProductInput carries the fields of a new product.
type ProvisionProductInput struct {
	ID          string
	Name        string
	Description string
	Size        string
	Category    string
	Price       float64
	Temperature string
}

// ProvisionCustomerInput carries the fields of a new customer.
type ProvisionCustomerInput struct {
	ID             string
	FirstName      string
	LastName       string
	Type           string
	Email          string
	AccountAddress string
}

// StoreService holds the role-gated store, product and customer operations.
// The actor is the user already authenticated by the transport layer.
type StoreService interface {
	ProvisionStore(ctx context.Context, actor *domain.User, id, description, address string) (*domain.Store, error)
	ShowStore(ctx context.Context, actor *domain.User, id string) (*domain.Store, error)
	GetAllStores(ctx context.Context) ([]*domain.Store, error)
	UpdateStore(ctx context.Context, actor *domain.User, id, description, address string) (*domain.Store, error)
	DeleteStore(ctx context.Context, actor *domain.User, id string) error

	ProvisionProduct(ctx context.Context, actor *domain.User, input ProvisionProductInput) (*domain.Product, error)
	ShowProduct(ctx context.Context, actor *domain.User, id string) (*domain.Product, error)
	ProvisionCustomer(ctx context.Context, actor *domain.User, input ProvisionCustomerInput) (*domain.Customer, error)
	ShowCustomer(ctx context.Context, actor *domain.User, id string) (*domain.Customer, error)
}
