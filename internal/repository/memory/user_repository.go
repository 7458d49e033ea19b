package memory

import (
	"context"
	"fmt"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	store *Store
}

func userMatches(u *entity.User, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return u.Id == s.ID, nil
	case specification.ByEmail:
		return u.Email == s.Email, nil
	default:
		return false, fmt.Errorf("memory user repository: unsupported specification %T", spec)
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	r.store.users[user.Id] = cloneUser(user)
	return nil
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		match := true
		for _, spec := range specs {
			ok, err := userMatches(u, spec)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, u := range r.store.users {
		match := true
		for _, spec := range specs {
			ok, err := userMatches(u, spec)
			if err != nil {
				return 0, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count, nil
}
