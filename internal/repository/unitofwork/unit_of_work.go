package unitofwork

import (
	"context"

	"notevault-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. Begin/Commit
// bracket the multi-write orchestrations (note create with its first version,
// update with its pre-image version, cascade delete) so they land atomically.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	VersionRepository() contract.VersionRepository
	ShareRepository() contract.ShareRepository
}
