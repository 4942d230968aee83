package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smartstore/store-system/internal/core/domain"
)

func (d *DataManager) PersistUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := replaceByID(ctx, d.users, user.Email, user); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	return user.Clone(), nil
}

// InsertUser relies on the _id index: a second insert for the same email
// fails with a duplicate key error.
func (d *DataManager) InsertUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := d.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user.Clone(), nil
}

func (d *DataManager) ReplaceUser(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	ok, err := replaceExisting(ctx, d.users, user.Email, user)
	if err != nil {
		return nil, false, fmt.Errorf("replace user: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return user.Clone(), true, nil
}

func (d *DataManager) GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	user, found, err := findByID[domain.User](ctx, d.users, email)
	if err != nil {
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	return user, found, nil
}

func (d *DataManager) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := findAll[domain.User](ctx, d.users)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (d *DataManager) DoesUserExist(ctx context.Context, email string) (bool, error) {
	ok, err := existsByID(ctx, d.users, email)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return ok, nil
}

func (d *DataManager) RemoveUser(ctx context.Context, email string) (bool, error) {
	ok, err := removeByID(ctx, d.users, email)
	if err != nil {
		return false, fmt.Errorf("remove user: %w", err)
	}
	return ok, nil
}
