package contract

import (
	"context"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ShareRepository interface {
	// Create fails with the store's duplicate-key error for an existing
	// (note, user) pair; it never overwrites.
	Create(ctx context.Context, share *entity.Share) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Share, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Share, error)
	// DeleteByNoteAndUser is a no-op when the share does not exist.
	DeleteByNoteAndUser(ctx context.Context, noteId, userId uuid.UUID) error
	DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error
}
