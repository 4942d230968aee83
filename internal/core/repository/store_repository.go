package repository

import (
	"context"

	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

type StoreRepository struct {
	dm ports.StoreDataManager
}

func NewStoreRepository(dm ports.StoreDataManager) *StoreRepository {
	return &StoreRepository{dm: dm}
}

func (r *StoreRepository) Save(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	return r.dm.PersistStore(ctx, store)
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, bool, error) {
	if isBlank(id) {
		return nil, false, nil
	}
	return r.dm.GetStoreByID(ctx, id)
}

func (r *StoreRepository) FindAll(ctx context.Context) ([]*domain.Store, error) {
	return r.dm.GetAllStores(ctx)
}

func (r *StoreRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if isBlank(id) {
		return false, nil
	}
	return r.dm.DoesStoreExist(ctx, id)
}

func (r *StoreRepository) Delete(ctx context.Context, store *domain.Store) error {
	if store == nil || isBlank(store.ID) {
		return nil
	}
	_, err := r.dm.RemoveStore(ctx, store.ID)
	return err
}

func (r *StoreRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if isBlank(id) {
		return false, nil
	}
	return r.dm.RemoveStore(ctx, id)
}
