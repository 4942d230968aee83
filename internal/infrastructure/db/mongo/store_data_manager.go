package mongo

import (
	"context"
	"fmt"

	"github.com/smartstore/store-system/internal/core/domain"
)

func (d *DataManager) PersistStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := replaceByID(ctx, d.stores, store.ID, store); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	return store.Clone(), nil
}

func (d *DataManager) GetStoreByID(ctx context.Context, id string) (*domain.Store, bool, error) {
	store, found, err := findByID[domain.Store](ctx, d.stores, id)
	if err != nil {
		return nil, false, fmt.Errorf("find store: %w", err)
	}
	return store, found, nil
}

func (d *DataManager) GetAllStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := findAll[domain.Store](ctx, d.stores)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (d *DataManager) DoesStoreExist(ctx context.Context, id string) (bool, error) {
	ok, err := existsByID(ctx, d.stores, id)
	if err != nil {
		return false, fmt.Errorf("check store: %w", err)
	}
	return ok, nil
}

func (d *DataManager) RemoveStore(ctx context.Context, id string) (bool, error) {
	ok, err := removeByID(ctx, d.stores, id)
	if err != nil {
		return false, fmt.Errorf("remove store: %w", err)
	}
	return ok, nil
}

// --- Catalog ---

func (d *DataManager) PersistProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := replaceByID(ctx, d.products, product.ID, product); err != nil {
		return nil, fmt.Errorf("persist product: %w", err)
	}
	return product.Clone(), nil
}

func (d *DataManager) GetProductByID(ctx context.Context, id string) (*domain.Product, bool, error) {
	product, found, err := findByID[domain.Product](ctx, d.products, id)
	if err != nil {
		return nil, false, fmt.Errorf("find product: %w", err)
	}
	return product, found, nil
}

func (d *DataManager) DoesProductExist(ctx context.Context, id string) (bool, error) {
	ok, err := existsByID(ctx, d.products, id)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return ok, nil
}

func (d *DataManager) PersistCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := replaceByID(ctx, d.customers, customer.ID, customer); err != nil {
		return nil, fmt.Errorf("persist customer: %w", err)
	}
	return customer.Clone(), nil
}

func (d *DataManager) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, bool, error) {
	customer, found, err := findByID[domain.Customer](ctx, d.customers, id)
	if err != nil {
		return nil, false, fmt.Errorf("find customer: %w", err)
	}
	return customer, found, nil
}

func (d *DataManager) DoesCustomerExist(ctx context.Context, id string) (bool, error) {
	ok, err := existsByID(ctx, d.customers, id)
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return ok, nil
}
