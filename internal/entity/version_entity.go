package entity

import (
	"time"

	"github.com/google/uuid"
)

// Version is an immutable snapshot of a note at one point in its edit history.
// Version numbers for a note are contiguous starting at 1; a row is created on
// every content mutation and never updated. Rows only disappear when the note
// itself is deleted.
type Version struct {
	Id            uuid.UUID
	NoteId        uuid.UUID
	VersionNumber int
	Title         string
	Content       string
	Tags          []string
	EditedBy      uuid.UUID
	EditedAt      time.Time
}
