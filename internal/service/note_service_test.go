package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"notevault-be/internal/apperr"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/repository/memory"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newNoteTestEnv(t *testing.T) (INoteService, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := memory.NewRepositoryFactory(memory.NewStore())
	svc := NewNoteService(factory, nil, nil, nopLogger{})
	return svc, factory
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, email string) uuid.UUID {
	t.Helper()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     email,
		FullName:  "Test User",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, factory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user))
	return user.Id
}

func grantShare(t *testing.T, factory unitofwork.RepositoryFactory, noteId, userId uuid.UUID, p entity.Permission) {
	t.Helper()
	require.NoError(t, factory.NewUnitOfWork(context.Background()).ShareRepository().Create(context.Background(), &entity.Share{
		Id:         uuid.New(),
		NoteId:     noteId,
		UserId:     userId,
		Permission: p,
		SharedAt:   time.Now(),
	}))
}

func TestCreateNoteWritesInitialVersion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteTestEnv(t)
	owner := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:   "  Meeting Notes  ",
		Content: "agenda",
		Tags:    []string{" work ", "q3"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Meeting Notes", note.Title)
	assert.Equal(t, []string{"work", "q3"}, note.Tags)
	assert.Equal(t, owner, note.UserId)

	versions, err := svc.ListVersions(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, "Meeting Notes", versions[0].Title)
	assert.Equal(t, "agenda", versions[0].Content)
	assert.Equal(t, owner, versions[0].EditedBy)
}

func TestCreateNoteValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteTestEnv(t)
	owner := uuid.New()

	_, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "   ", Content: ""})
	require.Error(t, err)

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "content")
}

func TestUpdateAppendsPreImageSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteTestEnv(t)
	owner := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{
		Title: "Draft", Content: "first", Tags: []string{"a"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, &dto.UpdateNoteRequest{
		Id: note.Id, Title: "Draft", Content: "second", Tags: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Content)
	require.NotNil(t, updated.UpdatedAt)

	versions, err := svc.ListVersions(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	// Newest first. Version 2 snapshots the state the update replaced.
	assert.Equal(t, 2, versions[0].VersionNumber)
	assert.Equal(t, "first", versions[0].Content)
	assert.Equal(t, []string{"a"}, versions[0].Tags)
	assert.Equal(t, 1, versions[1].VersionNumber)
	assert.Equal(t, "first", versions[1].Content)
}

func TestNoteHistoryAcrossEdits(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteTestEnv(t)
	owner := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Doc", Content: "v0"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, &dto.UpdateNoteRequest{Id: note.Id, Title: "Doc", Content: "v1"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, owner, &dto.UpdateNoteRequest{Id: note.Id, Title: "Doc", Content: "v2"})
	require.NoError(t, err)

	versions, err := svc.ListVersions(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{
		versions[0].VersionNumber, versions[1].VersionNumber, versions[2].VersionNumber,
	})
	// Version 3 holds what the second update replaced.
	assert.Equal(t, "v1", versions[0].Content)

	v2, err := svc.ShowVersion(ctx, owner, note.Id, 2)
	require.NoError(t, err)
	assert.Equal(t, "v0", v2.Content)

	current, err := svc.Show(ctx, owner, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "v2", current.Content)

	_, err = svc.ShowVersion(ctx, owner, note.Id, 9)
	require.ErrorIs(t, err, apperr.ErrVersionNotFound)
}

func TestShowEnforcesReadPermission(t *testing.T) {
	ctx := context.Background()
	svc, factory := newNoteTestEnv(t)
	owner := uuid.New()
	reader := uuid.New()
	stranger := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Shared", Content: "body"})
	require.NoError(t, err)

	_, err = svc.Show(ctx, stranger, note.Id)
	require.ErrorIs(t, err, apperr.ErrReadPermissionRequired)

	grantShare(t, factory, note.Id, reader, entity.PermissionRead)

	got, err := svc.Show(ctx, reader, note.Id)
	require.NoError(t, err)
	assert.Equal(t, note.Id, got.Id)

	// History follows the same read rule as the note itself.
	versions, err := svc.ListVersions(ctx, reader, note.Id)
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	_, err = svc.ListVersions(ctx, stranger, note.Id)
	require.ErrorIs(t, err, apperr.ErrReadPermissionRequired)
}

func TestUpdateEnforcesWritePermission(t *testing.T) {
	ctx := context.Background()
	svc, factory := newNoteTestEnv(t)
	owner := uuid.New()
	reader := uuid.New()
	writer := uuid.New()
	stranger := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Shared", Content: "body"})
	require.NoError(t, err)

	grantShare(t, factory, note.Id, reader, entity.PermissionRead)
	grantShare(t, factory, note.Id, writer, entity.PermissionWrite)

	req := &dto.UpdateNoteRequest{Id: note.Id, Title: "Shared", Content: "edited"}

	_, err = svc.Update(ctx, stranger, req)
	require.ErrorIs(t, err, apperr.ErrWritePermissionRequired)

	_, err = svc.Update(ctx, reader, req)
	require.ErrorIs(t, err, apperr.ErrWritePermissionRequired)

	updated, err := svc.Update(ctx, writer, req)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	// The snapshot records who performed the edit.
	versions, err := svc.ListVersions(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, writer, versions[0].EditedBy)

	err = svc.Delete(ctx, reader, note.Id)
	require.ErrorIs(t, err, apperr.ErrWritePermissionRequired)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	svc, factory := newNoteTestEnv(t)
	owner := uuid.New()
	reader := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Gone", Content: "soon"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, owner, &dto.UpdateNoteRequest{Id: note.Id, Title: "Gone", Content: "sooner"})
	require.NoError(t, err)
	grantShare(t, factory, note.Id, reader, entity.PermissionRead)

	require.NoError(t, svc.Delete(ctx, owner, note.Id))

	_, err = svc.Show(ctx, owner, note.Id)
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)
	_, err = svc.ShowVersion(ctx, owner, note.Id, 1)
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)

	uow := factory.NewUnitOfWork(ctx)
	versions, err := uow.VersionRepository().FindAll(ctx, specification.ByNoteId{NoteID: note.Id})
	require.NoError(t, err)
	assert.Empty(t, versions)
	shares, err := uow.ShareRepository().FindAll(ctx, specification.ByNoteId{NoteID: note.Id})
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestDeleteUnknownNote(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteTestEnv(t)

	err := svc.Delete(ctx, uuid.New(), uuid.New())
	require.ErrorIs(t, err, apperr.ErrNoteNotFound)
}

func TestSearchIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc, factory := newNoteTestEnv(t)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Create(ctx, alice, &dto.CreateNoteRequest{
		Title: "Grocery list", Content: "milk, eggs", Tags: []string{"home"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, &dto.CreateNoteRequest{
		Title: "Project plan", Content: "milestones", Tags: []string{"work"},
	})
	require.NoError(t, err)
	shared, err := svc.Create(ctx, bob, &dto.CreateNoteRequest{
		Title: "Grocery budget", Content: "numbers", Tags: []string{"home"},
	})
	require.NoError(t, err)
	grantShare(t, factory, shared.Id, alice, entity.PermissionRead)

	// Shared notes never surface in search, even with a read grant.
	results, err := svc.Search(ctx, alice, "grocery", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Grocery list", results[0].Title)

	results, err = svc.Search(ctx, alice, "", "work")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Project plan", results[0].Title)

	results, err = svc.Search(ctx, alice, "", "")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search(ctx, alice, "milestones", "home")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestConcurrentUpdatesKeepVersionsContiguous(t *testing.T) {
	ctx := context.Background()
	svc, _ := newNoteTestEnv(t)
	owner := uuid.New()

	note, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Race", Content: "base"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	update := func(content string) {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			_, err := svc.Update(ctx, owner, &dto.UpdateNoteRequest{
				Id: note.Id, Title: "Race", Content: content,
			})
			if err == nil {
				return
			}
			if !errors.Is(err, apperr.ErrVersionConflict) {
				t.Errorf("unexpected update error: %v", err)
				return
			}
		}
		t.Error("update kept losing the version race")
	}

	wg.Add(2)
	go update("left")
	go update("right")
	wg.Wait()

	versions, err := svc.ListVersions(ctx, owner, note.Id)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	for i, v := range versions {
		assert.Equal(t, 3-i, v.VersionNumber)
	}
}
