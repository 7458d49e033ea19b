package service

import (
	"context"
	"time"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

// IDirectoryService resolves a share target's email to a user identity.
type IDirectoryService interface {
	ResolveByEmail(ctx context.Context, email string) (*entity.User, error)
}

type directoryService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewDirectoryService(uowFactory unitofwork.RepositoryFactory) IDirectoryService {
	return &directoryService{
		uowFactory: uowFactory,
		// Email ownership rarely changes; short TTL keeps grants snappy
		// without holding on to stale identities.
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *directoryService) ResolveByEmail(ctx context.Context, email string) (*entity.User, error) {
	if cached, found := s.cache.Get(email); found {
		user := cached.(entity.User)
		return &user, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil // misses are not cached
	}

	s.cache.Set(email, *user, gocache.DefaultExpiration)
	return user, nil
}
