package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type noteRepository struct {
	store *Store
}

func noteMatches(n *entity.Note, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return n.Id == s.ID, nil
	case specification.ByIDs:
		for _, id := range s.IDs {
			if n.Id == id {
				return true, nil
			}
		}
		return false, nil
	case specification.OwnedBy:
		return n.UserId == s.UserID, nil
	case specification.NoteSearchQuery:
		q := strings.ToLower(s.Query)
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q), nil
	case specification.HasTag:
		for _, tag := range n.Tags {
			if tag == s.Tag {
				return true, nil
			}
		}
		return false, nil
	case specification.OrderBy, specification.Pagination:
		return true, nil // applied after filtering
	default:
		return false, fmt.Errorf("memory note repository: unsupported specification %T", spec)
	}
}

func (r *noteRepository) filter(specs ...specification.Specification) ([]*entity.Note, error) {
	var result []*entity.Note
	for _, n := range r.store.notes {
		match := true
		for _, spec := range specs {
			ok, err := noteMatches(n, spec)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, cloneNote(n))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	r.store.notes[note.Id] = cloneNote(note)
	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.notes[note.Id] = cloneNote(note)
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.notes, id)
	return nil
}

func (r *noteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	notes, err := r.filter(specs...)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return notes[0], nil
}

func (r *noteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.filter(specs...)
}

func (r *noteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	notes, err := r.filter(specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}
