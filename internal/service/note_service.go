package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"notevault-be/internal/access"
	"notevault-be/internal/apperr"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"
	"notevault-be/pkg/events"
	pktNats "notevault-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Search(ctx context.Context, userId uuid.UUID, search, tag string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	ListVersions(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]*dto.VersionResponse, error)
	ShowVersion(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, versionNumber int) (*dto.VersionResponse, error)
}

// noteService orchestrates the note repository and the version ledger so the
// two never diverge: every content mutation and its ledger write commit (or
// fail) as one unit of work.
type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	checker          *access.Checker
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		checker:          access.NewChecker(),
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// normalizeNoteInput trims the title and every tag, then enforces that title
// and content are non-empty. Returns field-level detail; nothing has been
// written when it fails.
func normalizeNoteInput(title, content string, tags []string) (string, []string, error) {
	fields := make(map[string]string)

	title = strings.TrimSpace(title)
	if title == "" {
		fields["title"] = "must not be empty"
	}
	if content == "" {
		fields["content"] = "must not be empty"
	}
	if len(fields) > 0 {
		return "", nil, apperr.NewValidationError(fields)
	}

	trimmed := make([]string, len(tags))
	for i, tag := range tags {
		trimmed[i] = strings.TrimSpace(tag)
	}
	return title, trimmed, nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title, tags, err := normalizeNoteInput(req.Title, req.Content, req.Tags)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Content:   req.Content,
		Tags:      tags,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	// The note and its initial version commit together: no note may exist
	// without version 1.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	initial := entity.Version{
		Id:            uuid.New(),
		NoteId:        note.Id,
		VersionNumber: 1,
		Title:         note.Title,
		Content:       note.Content,
		Tags:          note.Tags,
		EditedBy:      userId,
		EditedAt:      time.Now(),
	}
	if err := uow.VersionRepository().Create(ctx, &initial); err != nil {
		return nil, fmt.Errorf("creating initial version: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, note.Id, "created", userId)
	s.publishEvent(ctx, "NOTE_CREATED", note.Id, userId, note.Title)

	return toNoteResponse(&note), nil
}

func (s *noteService) Search(ctx context.Context, userId uuid.UUID, search, tag string) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Search never crosses owners; shared notes are reachable by id only.
	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}
	if search != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: search})
	}
	if tag != "" {
		specs = append(specs, specification.HasTag{Tag: tag})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.NoteResponse, len(notes))
	for i, note := range notes {
		response[i] = toNoteResponse(note)
	}
	return response, nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNoteNotFound
	}

	if err := s.checker.Check(ctx, uow, note, userId, access.ClassRead); err != nil {
		return nil, err
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNoteNotFound
	}

	if err := s.checker.Check(ctx, uow, note, userId, access.ClassWrite); err != nil {
		return nil, err
	}

	title, tags, err := normalizeNoteInput(req.Title, req.Content, req.Tags)
	if err != nil {
		return nil, err
	}

	latest, err := uow.VersionRepository().FindLatest(ctx, note.Id)
	if err != nil {
		return nil, fmt.Errorf("reading latest version: %w", err)
	}
	nextNumber := 1
	if latest != nil {
		nextNumber = latest.VersionNumber + 1
	}

	// The appended version captures the pre-mutation state: what the update
	// supersedes, not what it writes.
	snapshot := entity.Version{
		Id:            uuid.New(),
		NoteId:        note.Id,
		VersionNumber: nextNumber,
		Title:         note.Title,
		Content:       note.Content,
		Tags:          note.Tags,
		EditedBy:      userId,
		EditedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The version append goes first: a concurrent update racing for the same
	// number trips the (note_id, version_number) unique index here, before
	// the note row is touched, and the whole operation rolls back.
	if err := uow.VersionRepository().Create(ctx, &snapshot); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrVersionConflict
		}
		return nil, fmt.Errorf("appending version: %w", err)
	}

	now := time.Now()
	note.Title = title
	note.Content = req.Content
	note.Tags = tags
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, note.Id, "updated", userId)
	s.publishEvent(ctx, "NOTE_UPDATED", note.Id, userId, note.Title)

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if note == nil {
		return apperr.ErrNoteNotFound
	}

	if err := s.checker.Check(ctx, uow, note, userId, access.ClassWrite); err != nil {
		return err
	}

	// Note, versions and shares go in one cascade; a reader never observes
	// a deleted note with surviving versions or shares.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	if err := uow.VersionRepository().DeleteAllByNoteId(ctx, id); err != nil {
		return fmt.Errorf("deleting versions: %w", err)
	}
	if err := uow.ShareRepository().DeleteAllByNoteId(ctx, id); err != nil {
		return fmt.Errorf("deleting shares: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishActivity(ctx, id, "deleted", userId)
	s.publishEvent(ctx, "NOTE_DELETED", id, userId, note.Title)

	return nil
}

func (s *noteService) ListVersions(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]*dto.VersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNoteNotFound
	}

	if err := s.checker.Check(ctx, uow, note, userId, access.ClassRead); err != nil {
		return nil, err
	}

	versions, err := uow.VersionRepository().FindAll(ctx,
		specification.ByNoteId{NoteID: noteId},
		specification.OrderBy{Field: "version_number", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.VersionResponse, len(versions))
	for i, v := range versions {
		response[i] = toVersionResponse(v)
	}
	return response, nil
}

func (s *noteService) ShowVersion(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, versionNumber int) (*dto.VersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNoteNotFound
	}

	if err := s.checker.Check(ctx, uow, note, userId, access.ClassRead); err != nil {
		return nil, err
	}

	version, err := uow.VersionRepository().FindOne(ctx,
		specification.ByNoteId{NoteID: noteId},
		specification.ByVersionNumber{Number: versionNumber},
	)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return nil, apperr.ErrVersionNotFound
	}

	return toVersionResponse(version), nil
}

// publishActivity puts a mutation on the in-process bus. Auxiliary: a bus
// failure is logged and never fails the request.
func (s *noteService) publishActivity(ctx context.Context, noteId uuid.UUID, action string, actorId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.NoteActivityMessage{
		NoteId:  noteId,
		Action:  action,
		ActorId: actorId,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("note", "failed to publish activity message", map[string]interface{}{
			"note_id": noteId.String(),
			"action":  action,
			"error":   err.Error(),
		})
	}
}

func (s *noteService) publishEvent(ctx context.Context, eventType string, noteId, userId uuid.UUID, title string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": noteId,
			"user_id": userId,
			"title":   title,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("note", "failed to publish "+eventType+" event", map[string]interface{}{
			"note_id": noteId.String(),
			"error":   err.Error(),
		})
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      note.Tags,
		UserId:    note.UserId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toVersionResponse(v *entity.Version) *dto.VersionResponse {
	return &dto.VersionResponse{
		NoteId:        v.NoteId,
		VersionNumber: v.VersionNumber,
		Title:         v.Title,
		Content:       v.Content,
		Tags:          v.Tags,
		EditedBy:      v.EditedBy,
		EditedAt:      v.EditedAt,
	}
}
