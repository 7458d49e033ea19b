package mapper

import (
	"notevault-be/internal/entity"
	"notevault-be/internal/model"

	"gorm.io/datatypes"
)

type VersionMapper struct{}

func NewVersionMapper() *VersionMapper {
	return &VersionMapper{}
}

func (m *VersionMapper) ToEntity(v *model.Version) *entity.Version {
	if v == nil {
		return nil
	}
	return &entity.Version{
		Id:            v.Id,
		NoteId:        v.NoteId,
		VersionNumber: v.VersionNumber,
		Title:         v.Title,
		Content:       v.Content,
		Tags:          []string(v.Tags),
		EditedBy:      v.EditedBy,
		EditedAt:      v.EditedAt,
	}
}

func (m *VersionMapper) ToModel(v *entity.Version) *model.Version {
	if v == nil {
		return nil
	}
	return &model.Version{
		Id:            v.Id,
		NoteId:        v.NoteId,
		VersionNumber: v.VersionNumber,
		Title:         v.Title,
		Content:       v.Content,
		Tags:          datatypes.NewJSONSlice(v.Tags),
		EditedBy:      v.EditedBy,
		EditedAt:      v.EditedAt,
	}
}

func (m *VersionMapper) ToEntities(versions []*model.Version) []*entity.Version {
	entities := make([]*entity.Version, len(versions))
	for i, v := range versions {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
