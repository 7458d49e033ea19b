package memory

import (
	"context"
	"fmt"
	"sort"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shareRepository struct {
	store *Store
}

func shareMatches(sh *entity.Share, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByNoteId:
		return sh.NoteId == s.NoteID, nil
	case specification.SharedWith:
		return sh.UserId == s.UserID, nil
	case specification.OrderBy, specification.Pagination:
		return true, nil
	default:
		return false, fmt.Errorf("memory share repository: unsupported specification %T", spec)
	}
}

func (r *shareRepository) filter(specs ...specification.Specification) ([]*entity.Share, error) {
	var result []*entity.Share
	for _, sh := range r.store.shares {
		match := true
		for _, spec := range specs {
			ok, err := shareMatches(sh, spec)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, cloneShare(sh))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SharedAt.Before(result[j].SharedAt)
	})
	return result, nil
}

func (r *shareRepository) Create(ctx context.Context, share *entity.Share) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, sh := range r.store.shares {
		if sh.NoteId == share.NoteId && sh.UserId == share.UserId {
			return gorm.ErrDuplicatedKey
		}
	}
	if share.Id == uuid.Nil {
		share.Id = uuid.New()
	}
	r.store.shares = append(r.store.shares, cloneShare(share))
	return nil
}

func (r *shareRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Share, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	shares, err := r.filter(specs...)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, nil
	}
	return shares[0], nil
}

func (r *shareRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Share, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.filter(specs...)
}

func (r *shareRepository) DeleteByNoteAndUser(ctx context.Context, noteId, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.shares[:0]
	for _, sh := range r.store.shares {
		if !(sh.NoteId == noteId && sh.UserId == userId) {
			kept = append(kept, sh)
		}
	}
	r.store.shares = kept
	return nil
}

func (r *shareRepository) DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.shares[:0]
	for _, sh := range r.store.shares {
		if sh.NoteId != noteId {
			kept = append(kept, sh)
		}
	}
	r.store.shares = kept
	return nil
}
