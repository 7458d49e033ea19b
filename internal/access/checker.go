// Package access answers one question: may this principal perform this class
// of operation on this note? It is a pure lookup over the note's owner and
// the share ledger; it never mutates anything.
package access

import (
	"context"
	"fmt"

	"notevault-be/internal/apperr"
	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Class splits operations into the two permission tiers. Fetching a note and
// reading its version history are ClassRead; update and delete are ClassWrite.
type Class int

const (
	ClassRead Class = iota
	ClassWrite
)

type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// Check evaluates the permission rules in order:
//  1. the owner is always allowed, no Share row consulted;
//  2. no share at all denies with the class-matching reason, so a caller can
//     tell "no access" on a read apart from "no access" on a write;
//  3. a read-level share denies write-class operations;
//  4. anything else is allowed.
//
// Storage failures are returned as-is, distinct from a denial.
func (c *Checker) Check(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, principal uuid.UUID, class Class) error {
	if note.IsOwnedBy(principal) {
		return nil
	}

	share, err := uow.ShareRepository().FindOne(ctx,
		specification.ByNoteId{NoteID: note.Id},
		specification.SharedWith{UserID: principal},
	)
	if err != nil {
		return fmt.Errorf("looking up share: %w", err)
	}

	if share == nil {
		if class == ClassWrite {
			return apperr.ErrWritePermissionRequired
		}
		return apperr.ErrReadPermissionRequired
	}

	if class == ClassWrite && !share.Permission.AllowsWrite() {
		return apperr.ErrWritePermissionRequired
	}

	return nil
}
