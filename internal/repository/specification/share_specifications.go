package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SharedWith filters shares by their target user
type SharedWith struct {
	UserID uuid.UUID
}

func (s SharedWith) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
