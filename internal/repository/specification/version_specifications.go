package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByNoteId filters child rows (versions, shares) by their parent note
type ByNoteId struct {
	NoteID uuid.UUID
}

func (s ByNoteId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}

// ByVersionNumber filters versions by their number within a note
type ByVersionNumber struct {
	Number int
}

func (s ByVersionNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("version_number = ?", s.Number)
}
