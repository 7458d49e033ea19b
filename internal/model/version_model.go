package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Version rows are append-only. The composite unique index serializes
// concurrent appends for the same note: exactly one writer gets a given
// version number, the loser gets a duplicate-key error.
type Version struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId        uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_versions_note_number"`
	VersionNumber int                         `gorm:"not null;uniqueIndex:idx_versions_note_number"`
	Title         string                      `gorm:"type:varchar(255);not null"`
	Content       string                      `gorm:"type:text;not null"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	EditedBy      uuid.UUID                   `gorm:"type:uuid;not null"`
	EditedAt      time.Time                   `gorm:"autoCreateTime"`
}

func (Version) TableName() string {
	return "versions"
}
