package service

import (
	"context"
	"testing"

	"notevault-be/internal/apperr"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/repository/memory"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShareTestEnv(t *testing.T) (IShareService, INoteService, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := memory.NewRepositoryFactory(memory.NewStore())
	noteSvc := NewNoteService(factory, nil, nil, nopLogger{})
	shareSvc := NewShareService(factory, NewDirectoryService(factory), nil, nopLogger{})
	return shareSvc, noteSvc, factory
}

func TestGrantShare(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, factory := newShareTestEnv(t)
	owner := uuid.New()
	targetId := seedUser(t, factory, "bob@example.com")

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	share, err := shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "read",
	})
	require.NoError(t, err)
	assert.Equal(t, note.Id, share.NoteId)
	assert.Equal(t, targetId, share.UserId)
	assert.Equal(t, "read", share.Permission)
	assert.Equal(t, "bob@example.com", share.Email)

	// The grant takes effect immediately.
	got, err := noteSvc.Show(ctx, targetId, note.Id)
	require.NoError(t, err)
	assert.Equal(t, note.Id, got.Id)
}

func TestGrantShareDuplicate(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, factory := newShareTestEnv(t)
	owner := uuid.New()
	seedUser(t, factory, "bob@example.com")

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "read",
	})
	require.NoError(t, err)

	// A second grant does not upgrade the existing one.
	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "write",
	})
	require.ErrorIs(t, err, apperr.ErrShareExists)

	shares, err := shareSvc.List(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "read", shares[0].Permission)
}

func TestGrantShareInvalidPermission(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, factory := newShareTestEnv(t)
	owner := uuid.New()
	seedUser(t, factory, "bob@example.com")

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "admin",
	})
	require.ErrorIs(t, err, apperr.ErrInvalidPermission)
}

func TestGrantShareUnknownEmail(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, _ := newShareTestEnv(t)
	owner := uuid.New()

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{
		Email: "nobody@example.com", Permission: "read",
	})
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestShareEndpointsMaskForeignNotes(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, factory := newShareTestEnv(t)
	owner := uuid.New()
	other := uuid.New()
	seedUser(t, factory, "bob@example.com")

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	// Not the owner: same answer as a note that does not exist at all,
	// even for a user holding a write share.
	grantShare(t, factory, note.Id, other, entity.PermissionWrite)

	_, err = shareSvc.Grant(ctx, other, note.Id, &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "read",
	})
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)

	_, err = shareSvc.List(ctx, other, note.Id)
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)

	err = shareSvc.Revoke(ctx, other, note.Id, other)
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)

	_, err = shareSvc.Grant(ctx, owner, uuid.New(), &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "read",
	})
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)
}

func TestRevokeShare(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, factory := newShareTestEnv(t)
	owner := uuid.New()
	targetId := seedUser(t, factory, "bob@example.com")

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{
		Email: "bob@example.com", Permission: "read",
	})
	require.NoError(t, err)

	require.NoError(t, shareSvc.Revoke(ctx, owner, note.Id, targetId))

	_, err = noteSvc.Show(ctx, targetId, note.Id)
	require.ErrorIs(t, err, apperr.ErrReadPermissionRequired)

	// Revoking again is a no-op, not an error.
	require.NoError(t, shareSvc.Revoke(ctx, owner, note.Id, targetId))
	require.NoError(t, shareSvc.Revoke(ctx, owner, note.Id, uuid.New()))
}

func TestListShares(t *testing.T) {
	ctx := context.Background()
	shareSvc, noteSvc, factory := newShareTestEnv(t)
	owner := uuid.New()
	seedUser(t, factory, "bob@example.com")
	seedUser(t, factory, "carol@example.com")

	note, err := noteSvc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Plan", Content: "body"})
	require.NoError(t, err)

	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{Email: "bob@example.com", Permission: "read"})
	require.NoError(t, err)
	_, err = shareSvc.Grant(ctx, owner, note.Id, &dto.GrantShareRequest{Email: "carol@example.com", Permission: "write"})
	require.NoError(t, err)

	shares, err := shareSvc.List(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, shares, 2)

	emails := map[string]string{}
	for _, s := range shares {
		emails[s.Email] = s.Permission
	}
	assert.Equal(t, map[string]string{
		"bob@example.com":   "read",
		"carol@example.com": "write",
	}, emails)
}
