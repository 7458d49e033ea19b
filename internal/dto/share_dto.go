package dto

import (
	"time"

	"github.com/google/uuid"
)

type GrantShareRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Permission string `json:"permission" validate:"required"`
}

type ShareResponse struct {
	Id         uuid.UUID `json:"id"`
	NoteId     uuid.UUID `json:"note_id"`
	UserId     uuid.UUID `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	Permission string    `json:"permission"`
	SharedAt   time.Time `json:"shared_at"`
}
