package specification

import "gorm.io/gorm"

// ByEmail filters users by email (unique)
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
