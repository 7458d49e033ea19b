package access

import (
	"context"
	"testing"
	"time"

	"notevault-be/internal/apperr"
	"notevault-be/internal/entity"
	"notevault-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCheckerPrecedence(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	uow := factory.NewUnitOfWork(ctx)

	owner := uuid.New()
	reader := uuid.New()
	writer := uuid.New()
	stranger := uuid.New()

	note := &entity.Note{
		Id:        uuid.New(),
		Title:     "Plan",
		Content:   "Q3 roadmap",
		UserId:    owner,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.NoteRepository().Create(ctx, note))

	require.NoError(t, uow.ShareRepository().Create(ctx, &entity.Share{
		Id: uuid.New(), NoteId: note.Id, UserId: reader,
		Permission: entity.PermissionRead, SharedAt: time.Now(),
	}))
	require.NoError(t, uow.ShareRepository().Create(ctx, &entity.Share{
		Id: uuid.New(), NoteId: note.Id, UserId: writer,
		Permission: entity.PermissionWrite, SharedAt: time.Now(),
	}))

	checker := NewChecker()

	tests := []struct {
		name      string
		principal uuid.UUID
		class     Class
		wantErr   error
	}{
		{"owner reads", owner, ClassRead, nil},
		{"owner writes", owner, ClassWrite, nil},
		{"reader reads", reader, ClassRead, nil},
		{"reader cannot write", reader, ClassWrite, apperr.ErrWritePermissionRequired},
		{"writer reads", writer, ClassRead, nil},
		{"writer writes", writer, ClassWrite, nil},
		{"stranger cannot read", stranger, ClassRead, apperr.ErrReadPermissionRequired},
		{"stranger cannot write", stranger, ClassWrite, apperr.ErrWritePermissionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Check(ctx, uow, note, tt.principal, tt.class)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckerOwnerSkipsShareLookup(t *testing.T) {
	// A share granted to the owner must never downgrade the owner's rights.
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	uow := factory.NewUnitOfWork(ctx)

	owner := uuid.New()
	note := &entity.Note{Id: uuid.New(), Title: "t", Content: "c", UserId: owner, CreatedAt: time.Now()}
	require.NoError(t, uow.NoteRepository().Create(ctx, note))
	require.NoError(t, uow.ShareRepository().Create(ctx, &entity.Share{
		Id: uuid.New(), NoteId: note.Id, UserId: owner,
		Permission: entity.PermissionRead, SharedAt: time.Now(),
	}))

	checker := NewChecker()
	require.NoError(t, checker.Check(ctx, uow, note, owner, ClassWrite))
}
