package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
	"github.com/smartstore/store-system/internal/core/repository"
)

// StoreService provisions and reads stores, products and customers on behalf
// of an already authenticated actor.
type StoreService struct {
	stores    *repository.StoreRepository
	products  ports.ProductDataManager
	customers ports.CustomerDataManager
	logger    zerolog.Logger
	now       func() time.Time
}

var _ ports.StoreService = (*StoreService)(nil)

func NewStoreService(
	stores *repository.StoreRepository,
	products ports.ProductDataManager,
	customers ports.CustomerDataManager,
	logger zerolog.Logger,
) *StoreService {
	return &StoreService{
		stores:    stores,
		products:  products,
		customers: customers,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// authorize returns ErrUnauthorized for a missing actor and ErrForbidden when
// the actor's role ranks below min.
func authorize(actor *domain.User, min domain.Role) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.Role.AtLeast(min) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *StoreService) deny(actor *domain.User, op string, err error) error {
	ev := s.logger.Warn().Str("op", op)
	if actor != nil {
		ev = ev.Str("actor", actor.Email).Str("role", string(actor.Role))
	}
	ev.Msg("store operation denied")
	return err
}

func (s *StoreService) ProvisionStore(ctx context.Context, actor *domain.User, id, description, address string) (*domain.Store, error) {
	if err := authorize(actor, domain.RoleManager); err != nil {
		return nil, s.deny(actor, "provision_store", err)
	}
	if err := requireFields(
		field{"id", id},
		field{"description", description},
		field{"address", address},
	); err != nil {
		return nil, err
	}

	exists, err := s.stores.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("provision store: %w", err)
	}
	if exists {
		return nil, domain.ErrStoreExists
	}

	now := s.now()
	store, err := s.stores.Save(ctx, &domain.Store{
		ID:          id,
		Description: description,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("provision store: %w", err)
	}

	s.logger.Info().Str("store_id", id).Str("actor", actor.Email).Msg("store provisioned")
	return store, nil
}

func (s *StoreService) ShowStore(ctx context.Context, actor *domain.User, id string) (*domain.Store, error) {
	if err := authorize(actor, domain.RoleUser); err != nil {
		return nil, s.deny(actor, "show_store", err)
	}
	store, found, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("show store: %w", err)
	}
	if !found {
		return nil, domain.ErrStoreNotFound
	}
	return store, nil
}

func (s *StoreService) GetAllStores(ctx context.Context) ([]*domain.Store, error) {
	return s.stores.FindAll(ctx)
}

// UpdateStore patches description and address; blank values keep the stored ones.
func (s *StoreService) UpdateStore(ctx context.Context, actor *domain.User, id, description, address string) (*domain.Store, error) {
	if err := authorize(actor, domain.RoleManager); err != nil {
		return nil, s.deny(actor, "update_store", err)
	}
	if strings.TrimSpace(description) == "" && strings.TrimSpace(address) == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "or address is required"}
	}

	store, found, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	if !found {
		return nil, domain.ErrStoreNotFound
	}

	if strings.TrimSpace(description) != "" {
		store.Description = description
	}
	if strings.TrimSpace(address) != "" {
		store.Address = address
	}
	store.UpdatedAt = s.now()

	saved, err := s.stores.Save(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	s.logger.Info().Str("store_id", id).Str("actor", actor.Email).Msg("store updated")
	return saved, nil
}

func (s *StoreService) DeleteStore(ctx context.Context, actor *domain.User, id string) error {
	if err := authorize(actor, domain.RoleAdmin); err != nil {
		return s.deny(actor, "delete_store", err)
	}
	deleted, err := s.stores.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if !deleted {
		return domain.ErrStoreNotFound
	}
	s.logger.Info().Str("store_id", id).Str("actor", actor.Email).Msg("store deleted")
	return nil
}

func (s *StoreService) ProvisionProduct(ctx context.Context, actor *domain.User, input ports.ProvisionProductInput) (*domain.Product, error) {
	if err := authorize(actor, domain.RoleManager); err != nil {
		return nil, s.deny(actor, "provision_product", err)
	}
	if err := requireFields(
		field{"id", input.ID},
		field{"name", input.Name},
		field{"temperature", input.Temperature},
	); err != nil {
		return nil, err
	}
	if input.Price < 0 {
		return nil, &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	temp, err := domain.ParseTemperature(input.Temperature)
	if err != nil {
		return nil, err
	}

	exists, err := s.products.DoesProductExist(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("provision product: %w", err)
	}
	if exists {
		return nil, domain.ErrProductExists
	}

	product, err := s.products.PersistProduct(ctx, &domain.Product{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Size:        input.Size,
		Category:    input.Category,
		Price:       input.Price,
		Temperature: temp,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("provision product: %w", err)
	}

	s.logger.Info().Str("product_id", input.ID).Str("actor", actor.Email).Msg("product provisioned")
	return product, nil
}

func (s *StoreService) ShowProduct(ctx context.Context, actor *domain.User, id string) (*domain.Product, error) {
	if err := authorize(actor, domain.RoleUser); err != nil {
		return nil, s.deny(actor, "show_product", err)
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrProductNotFound
	}
	product, found, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("show product: %w", err)
	}
	if !found {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *StoreService) ProvisionCustomer(ctx context.Context, actor *domain.User, input ports.ProvisionCustomerInput) (*domain.Customer, error) {
	if err := authorize(actor, domain.RoleManager); err != nil {
		return nil, s.deny(actor, "provision_customer", err)
	}
	if err := requireFields(
		field{"id", input.ID},
		field{"first_name", input.FirstName},
		field{"last_name", input.LastName},
		field{"type", input.Type},
	); err != nil {
		return nil, err
	}
	ctype, err := domain.ParseCustomerType(input.Type)
	if err != nil {
		return nil, err
	}
	if ctype == domain.CustomerRegistered && strings.TrimSpace(input.Email) == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "is required for registered customers"}
	}

	exists, err := s.customers.DoesCustomerExist(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("provision customer: %w", err)
	}
	if exists {
		return nil, domain.ErrCustomerExists
	}

	customer, err := s.customers.PersistCustomer(ctx, &domain.Customer{
		ID:             input.ID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Type:           ctype,
		Email:          input.Email,
		AccountAddress: input.AccountAddress,
		LastSeen:       s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("provision customer: %w", err)
	}

	s.logger.Info().Str("customer_id", input.ID).Str("actor", actor.Email).Msg("customer provisioned")
	return customer, nil
}

func (s *StoreService) ShowCustomer(ctx context.Context, actor *domain.User, id string) (*domain.Customer, error) {
	if err := authorize(actor, domain.RoleUser); err != nil {
		return nil, s.deny(actor, "show_customer", err)
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrCustomerNotFound
	}
	customer, found, err := s.customers.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("show customer: %w", err)
	}
	if !found {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}
