package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Tags      []string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IsOwnedBy reports whether userId is the note's owner. Ownership always
// implies full read and write access, no Share row needed.
func (n *Note) IsOwnedBy(userId uuid.UUID) bool {
	return n.UserId == userId
}
