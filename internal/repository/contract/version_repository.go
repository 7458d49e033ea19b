package contract

import (
	"context"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

// VersionRepository is the append-only version ledger for notes. Create must
// fail with the store's duplicate-key error when the (note, number) pair
// already exists; rows are never updated and are only removed by
// DeleteAllByNoteId during a note cascade delete.
type VersionRepository interface {
	Create(ctx context.Context, version *entity.Version) error
	FindLatest(ctx context.Context, noteId uuid.UUID) (*entity.Version, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Version, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Version, error)
	DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error
}
