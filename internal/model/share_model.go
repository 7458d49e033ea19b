package model

import (
	"time"

	"github.com/google/uuid"
)

// Share has a unique compound index on (note_id, user_id): granting the same
// note to the same user twice fails at the store instead of overwriting.
type Share struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NoteId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shares_note_user"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shares_note_user"`
	Permission string    `gorm:"type:varchar(16);not null"`
	SharedAt   time.Time `gorm:"autoCreateTime"`
}

func (Share) TableName() string {
	return "shares"
}
