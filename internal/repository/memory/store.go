// Package memory implements the repository contracts over in-process maps.
// It backs the service unit tests and local runs without Postgres. Writes are
// serialized by the store's transaction mutex and the unique-key rules of the
// SQL schema are enforced, so the services see the same error surface as with
// GORM. Rollback is not replayed; a unit of work that fails mid-flight must
// order its writes so the failing one comes first (the services do).
package memory

import (
	"sync"

	"notevault-be/internal/entity"

	"github.com/google/uuid"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	notes    map[uuid.UUID]*entity.Note
	versions []*entity.Version
	shares   []*entity.Share
	users    map[uuid.UUID]*entity.User
}

func NewStore() *Store {
	return &Store{
		notes: make(map[uuid.UUID]*entity.Note),
		users: make(map[uuid.UUID]*entity.User),
	}
}

func cloneNote(n *entity.Note) *entity.Note {
	if n == nil {
		return nil
	}
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func cloneVersion(v *entity.Version) *entity.Version {
	if v == nil {
		return nil
	}
	c := *v
	c.Tags = append([]string(nil), v.Tags...)
	return &c
}

func cloneShare(s *entity.Share) *entity.Share {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		c.PasswordHash = &h
	}
	return &c
}
