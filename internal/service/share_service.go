package service

import (
	"context"
	"errors"
	"fmt"
	"time"

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

type IShareService interface {
	Grant(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, req *dto.GrantShareRequest) (*dto.ShareResponse, error)
	Revoke(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, targetUserId uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]*dto.ShareResponse, error)
}

// shareService is owner-only. A requester who does not own the note gets
// ErrNoteNotFound, the same answer as for a note that does not exist, so
// share endpoints never leak whether a note id is real.
type shareService struct {
	uowFactory     unitofwork.RepositoryFactory
	directory      IDirectoryService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewShareService(
	uowFactory unitofwork.RepositoryFactory,
	directory IDirectoryService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IShareService {
	return &shareService{
		uowFactory:     uowFactory,
		directory:      directory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// ownedNote loads the note only if userId owns it; both "absent" and "not
// yours" collapse to ErrNoteNotFound.
func (s *shareService) ownedNote(ctx context.Context, uow unitofwork.UnitOfWork, noteId, userId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNoteNotFound
	}
	return note, nil
}

func (s *shareService) Grant(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, req *dto.GrantShareRequest) (*dto.ShareResponse, error) {
	permission, ok := entity.ParsePermission(req.Permission)
	if !ok {
		return nil, apperr.ErrInvalidPermission
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.ownedNote(ctx, uow, noteId, userId)
	if err != nil {
		return nil, err
	}

	target, err := s.directory.ResolveByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("resolving share target: %w", err)
	}
	if target == nil {
		return nil, apperr.ErrUserNotFound
	}

	share := entity.Share{
		Id:         uuid.New(),
		NoteId:     note.Id,
		UserId:     target.Id,
		Permission: permission,
		SharedAt:   time.Now(),
	}
	if err := uow.ShareRepository().Create(ctx, &share); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The existing share keeps its permission level untouched.
			return nil, apperr.ErrShareExists
		}
		return nil, fmt.Errorf("creating share: %w", err)
	}

	s.publishShared(ctx, note.Id, userId, target.Id, permission)

	return &dto.ShareResponse{
		Id:         share.Id,
		NoteId:     share.NoteId,
		UserId:     share.UserId,
		Email:      target.Email,
		Permission: string(share.Permission),
		SharedAt:   share.SharedAt,
	}, nil
}

// Revoke removes the target's share. Revoking a share that does not exist
// succeeds: the end state is the same.
func (s *shareService) Revoke(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, targetUserId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedNote(ctx, uow, noteId, userId); err != nil {
		return err
	}

	return uow.ShareRepository().DeleteByNoteAndUser(ctx, noteId, targetUserId)
}

func (s *shareService) List(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) ([]*dto.ShareResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedNote(ctx, uow, noteId, userId); err != nil {
		return nil, err
	}

	shares, err := uow.ShareRepository().FindAll(ctx, specification.ByNoteId{NoteID: noteId})
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ShareResponse, len(shares))
	for i, share := range shares {
		resp := &dto.ShareResponse{
			Id:         share.Id,
			NoteId:     share.NoteId,
			UserId:     share.UserId,
			Permission: string(share.Permission),
			SharedAt:   share.SharedAt,
		}
		target, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: share.UserId})
		if err == nil && target != nil {
			resp.Email = target.Email
		}
		response[i] = resp
	}
	return response, nil
}

func (s *shareService) publishShared(ctx context.Context, noteId, ownerId, targetId uuid.UUID, permission entity.Permission) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "NOTE_SHARED",
		Data: map[string]interface{}{
			"note_id":    noteId,
			"owner_id":   ownerId,
			"target_id":  targetId,
			"permission": string(permission),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("share", "failed to publish NOTE_SHARED event", map[string]interface{}{
			"note_id": noteId.String(),
			"error":   err.Error(),
		})
	}
}
