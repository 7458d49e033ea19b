package mapper

import (
	"notevault-be/internal/entity"
	"notevault-be/internal/model"
)

type ShareMapper struct{}

func NewShareMapper() *ShareMapper {
	return &ShareMapper{}
}

func (m *ShareMapper) ToEntity(s *model.Share) *entity.Share {
	if s == nil {
		return nil
	}
	return &entity.Share{
		Id:         s.Id,
		NoteId:     s.NoteId,
		UserId:     s.UserId,
		Permission: entity.Permission(s.Permission),
		SharedAt:   s.SharedAt,
	}
}

func (m *ShareMapper) ToModel(s *entity.Share) *model.Share {
	if s == nil {
		return nil
	}
	return &model.Share{
		Id:         s.Id,
		NoteId:     s.NoteId,
		UserId:     s.UserId,
		Permission: string(s.Permission),
		SharedAt:   s.SharedAt,
	}
}

func (m *ShareMapper) ToEntities(shares []*model.Share) []*entity.Share {
	entities := make([]*entity.Share, len(shares))
	for i, s := range shares {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
