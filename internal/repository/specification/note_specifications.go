package specification

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OwnedBy filters notes by their owner
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// NoteSearchQuery matches free text against title or content.
// ILIKE for Postgres (case insensitive).
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}

// HasTag matches notes whose tag list contains the exact tag, via jsonb
// containment on the tags column.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	b, _ := json.Marshal([]string{s.Tag})
	return db.Where("tags @> ?", datatypes.JSON(b))
}
