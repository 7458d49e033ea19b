package implementation

import (
	"context"
	"errors"

	"notevault-be/internal/entity"
	"notevault-be/internal/mapper"
	"notevault-be/internal/model"
	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareMapper
}

func NewShareRepository(db *gorm.DB) contract.ShareRepository {
	return &ShareRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareMapper(),
	}
}

func (r *ShareRepositoryImpl) Create(ctx context.Context, share *entity.Share) error {
	m := r.mapper.ToModel(share)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*share = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Share, error) {
	var m model.Share
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShareRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Share, error) {
	var models []*model.Share
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ShareRepositoryImpl) DeleteByNoteAndUser(ctx context.Context, noteId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("note_id = ? AND user_id = ?", noteId, userId).
		Delete(&model.Share{}).Error
}

func (r *ShareRepositoryImpl) DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.Share{}).Error
}
