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

type VersionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VersionMapper
}

func NewVersionRepository(db *gorm.DB) contract.VersionRepository {
	return &VersionRepositoryImpl{
		db:     db,
		mapper: mapper.NewVersionMapper(),
	}
}

func (r *VersionRepositoryImpl) Create(ctx context.Context, version *entity.Version) error {
	m := r.mapper.ToModel(version)
	// Duplicate (note_id, version_number) surfaces as gorm.ErrDuplicatedKey
	// via TranslateError; the service decides how to report it.
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*version = *r.mapper.ToEntity(m)
	return nil
}

func (r *VersionRepositoryImpl) FindLatest(ctx context.Context, noteId uuid.UUID) (*entity.Version, error) {
	var m model.Version
	err := r.db.WithContext(ctx).
		Where("note_id = ?", noteId).
		Order("version_number DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *VersionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Version, error) {
	var m model.Version
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *VersionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Version, error) {
	var models []*model.Version
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VersionRepositoryImpl) DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.Version{}).Error
}
