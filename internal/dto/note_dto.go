package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	UserId    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NoteActivityMessage travels over the in-process activity bus after a
// content mutation commits.
type NoteActivityMessage struct {
	NoteId  uuid.UUID `json:"note_id"`
	Action  string    `json:"action"` // "created" | "updated" | "deleted"
	ActorId uuid.UUID `json:"actor_id"`
}
