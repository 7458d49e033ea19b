package dto

import (
	"time"

	"github.com/google/uuid"
)

type VersionResponse struct {
	NoteId        uuid.UUID `json:"note_id"`
	VersionNumber int       `json:"version_number"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	EditedBy      uuid.UUID `json:"edited_by"`
	EditedAt      time.Time `json:"edited_at"`
}
