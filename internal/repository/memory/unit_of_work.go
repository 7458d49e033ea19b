package memory

import (
	"context"
	"fmt"

	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/unitofwork"
)

type factory struct {
	store *Store
}

// NewRepositoryFactory returns a unitofwork.RepositoryFactory over an
// in-process store, drop-in compatible with the GORM-backed one.
func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

type unitOfWork struct {
	store *Store
	inTx  bool
}

// Begin takes the store-wide transaction mutex, serializing concurrent
// units of work the way the database serializes conflicting writes.
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.store.txMu.Lock()
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	u.store.txMu.Unlock()
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return nil // mirror the defer Rollback-after-Commit idiom
	}
	u.inTx = false
	u.store.txMu.Unlock()
	return nil
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{store: u.store}
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return &noteRepository{store: u.store}
}

func (u *unitOfWork) VersionRepository() contract.VersionRepository {
	return &versionRepository{store: u.store}
}

func (u *unitOfWork) ShareRepository() contract.ShareRepository {
	return &shareRepository{store: u.store}
}
