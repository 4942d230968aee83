package redis

import (
	"context"
	"fmt"

	"github.com/smartstore/store-system/internal/core/domain"
)

const (
	kindUsers     = "users"
	kindStores    = "stores"
	kindProducts  = "products"
	kindCustomers = "customers"
)

// --- Users ---

func (d *DataManager) PersistUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := d.hset(ctx, kindUsers, user.Email, toUserRecord(user)); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	return user.Clone(), nil
}

func (d *DataManager) InsertUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	written, err := d.hsetnx(ctx, kindUsers, user.Email, toUserRecord(user))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if !written {
		return nil, domain.ErrUserExists
	}
	return user.Clone(), nil
}

func (d *DataManager) ReplaceUser(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	ok, err := d.hreplace(ctx, kindUsers, user.Email, toUserRecord(user))
	if err != nil {
		return nil, false, fmt.Errorf("replace user: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return user.Clone(), true, nil
}

func (d *DataManager) GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	rec, found, err := hget[userRecord](ctx, d, kindUsers, email)
	if err != nil {
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return rec.toDomain(), true, nil
}

func (d *DataManager) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	recs, err := hvals[userRecord](ctx, d, kindUsers)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]*domain.User, 0, len(recs))
	for _, r := range recs {
		users = append(users, r.toDomain())
	}
	return users, nil
}

func (d *DataManager) DoesUserExist(ctx context.Context, email string) (bool, error) {
	ok, err := d.hexists(ctx, kindUsers, email)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return ok, nil
}

func (d *DataManager) RemoveUser(ctx context.Context, email string) (bool, error) {
	ok, err := d.hdel(ctx, kindUsers, email)
	if err != nil {
		return false, fmt.Errorf("remove user: %w", err)
	}
	return ok, nil
}

// --- Stores ---

func (d *DataManager) PersistStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := d.hset(ctx, kindStores, store.ID, store); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	return store.Clone(), nil
}

func (d *DataManager) GetStoreByID(ctx context.Context, id string) (*domain.Store, bool, error) {
	store, found, err := hget[domain.Store](ctx, d, kindStores, id)
	if err != nil {
		return nil, false, fmt.Errorf("find store: %w", err)
	}
	return store, found, nil
}

func (d *DataManager) GetAllStores(ctx context.Context) ([]*domain.Store, error) {
	stores, err := hvals[domain.Store](ctx, d, kindStores)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (d *DataManager) DoesStoreExist(ctx context.Context, id string) (bool, error) {
	ok, err := d.hexists(ctx, kindStores, id)
	if err != nil {
		return false, fmt.Errorf("check store: %w", err)
	}
	return ok, nil
}

func (d *DataManager) RemoveStore(ctx context.Context, id string) (bool, error) {
	ok, err := d.hdel(ctx, kindStores, id)
	if err != nil {
		return false, fmt.Errorf("remove store: %w", err)
	}
	return ok, nil
}

// --- Catalog ---

func (d *DataManager) PersistProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := d.hset(ctx, kindProducts, product.ID, product); err != nil {
		return nil, fmt.Errorf("persist product: %w", err)
	}
	return product.Clone(), nil
}

func (d *DataManager) GetProductByID(ctx context.Context, id string) (*domain.Product, bool, error) {
	product, found, err := hget[domain.Product](ctx, d, kindProducts, id)
	if err != nil {
		return nil, false, fmt.Errorf("find product: %w", err)
	}
	return product, found, nil
}

func (d *DataManager) DoesProductExist(ctx context.Context, id string) (bool, error) {
	ok, err := d.hexists(ctx, kindProducts, id)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return ok, nil
}

func (d *DataManager) PersistCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := d.hset(ctx, kindCustomers, customer.ID, customer); err != nil {
		return nil, fmt.Errorf("persist customer: %w", err)
	}
	return customer.Clone(), nil
}

func (d *DataManager) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, bool, error) {
	customer, found, err := hget[domain.Customer](ctx, d, kindCustomers, id)
	if err != nil {
		return nil, false, fmt.Errorf("find customer: %w", err)
	}
	return customer, found, nil
}

func (d *DataManager) DoesCustomerExist(ctx context.Context, id string) (bool, error) {
	ok, err := d.hexists(ctx, kindCustomers, id)
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return ok, nil
}
