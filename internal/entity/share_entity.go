package entity

import (
	"time"

	"github.com/google/uuid"
)

type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// ParsePermission validates a raw permission string. New levels are added
// here and as constants above; callers switch exhaustively on the type.
func ParsePermission(s string) (Permission, bool) {
	switch Permission(s) {
	case PermissionRead, PermissionWrite:
		return Permission(s), true
	}
	return "", false
}

// AllowsWrite reports whether the level grants mutation rights.
func (p Permission) AllowsWrite() bool {
	return p == PermissionWrite
}

// Share grants a permission level on a note to a user other than its owner.
// At most one Share exists per (NoteId, UserId) pair.
type Share struct {
	Id         uuid.UUID
	NoteId     uuid.UUID
	UserId     uuid.UUID
	Permission Permission
	SharedAt   time.Time
}
