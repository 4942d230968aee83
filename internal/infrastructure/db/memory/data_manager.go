// Package memory is an in-process data manager. It backs local development
// and every service test.
package memory

import (
	"context"
	"sync"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

// DataManager keeps every entity in maps guarded by a single RWMutex, so each
// operation is atomic and reads observe all completed writes.
type DataManager struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	stores    map[string]*domain.Store
	products  map[string]*domain.Product
	customers map[string]*domain.Customer
}

var _ ports.DataManager = (*DataManager)(nil)

func NewDataManager() *DataManager {
	return &DataManager{
		users:     make(map[string]*domain.User),
		stores:    make(map[string]*domain.Store),
		products:  make(map[string]*domain.Product),
		customers: make(map[string]*domain.Customer),
	}
}

func (d *DataManager) Name() string { return "memory" }

func (d *DataManager) Ping(context.Context) error { return nil }

// --- Users ---

func (d *DataManager) PersistUser(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.Email] = user.Clone()
	return user.Clone(), nil
}

func (d *DataManager) InsertUser(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	d.users[user.Email] = user.Clone()
	return user.Clone(), nil
}

func (d *DataManager) ReplaceUser(_ context.Context, user *domain.User) (*domain.User, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.Email]; !ok {
		return nil, false, nil
	}
	d.users[user.Email] = user.Clone()
	return user.Clone(), true, nil
}

func (d *DataManager) GetUserByEmail(_ context.Context, email string) (*domain.User, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[email]
	if !ok {
		return nil, false, nil
	}
	return u.Clone(), true, nil
}

func (d *DataManager) GetAllUsers(context.Context) ([]*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*domain.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

func (d *DataManager) DoesUserExist(_ context.Context, email string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[email]
	return ok, nil
}

func (d *DataManager) RemoveUser(_ context.Context, email string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[email]; !ok {
		return false, nil
	}
	delete(d.users, email)
	return true, nil
}

// --- Stores ---

func (d *DataManager) PersistStore(_ context.Context, store *domain.Store) (*domain.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores[store.ID] = store.Clone()
	return store.Clone(), nil
}

func (d *DataManager) GetStoreByID(_ context.Context, id string) (*domain.Store, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.stores[id]
	if !ok {
		return nil, false, nil
	}
	return s.Clone(), true, nil
}

func (d *DataManager) GetAllStores(context.Context) ([]*domain.Store, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*domain.Store, 0, len(d.stores))
	for _, s := range d.stores {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (d *DataManager) DoesStoreExist(_ context.Context, id string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.stores[id]
	return ok, nil
}

func (d *DataManager) RemoveStore(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.stores[id]; !ok {
		return false, nil
	}
	delete(d.stores, id)
	return true, nil
}

// --- Products ---

func (d *DataManager) PersistProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.products[product.ID] = product.Clone()
	return product.Clone(), nil
}

func (d *DataManager) GetProductByID(_ context.Context, id string) (*domain.Product, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.products[id]
	if !ok {
		return nil, false, nil
	}
	return p.Clone(), true, nil
}

func (d *DataManager) DoesProductExist(_ context.Context, id string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.products[id]
	return ok, nil
}

// --- Customers ---

func (d *DataManager) PersistCustomer(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers[customer.ID] = customer.Clone()
	return customer.Clone(), nil
}

func (d *DataManager) GetCustomerByID(_ context.Context, id string) (*domain.Customer, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.customers[id]
	if !ok {
		return nil, false, nil
	}
	return c.Clone(), true, nil
}

func (d *DataManager) DoesCustomerExist(_ context.Context, id string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.customers[id]
	return ok, nil
}
