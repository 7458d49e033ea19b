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

type versionRepository struct {
	store *Store
}

func versionMatches(v *entity.Version, spec specification.Specification) (bool, error) {
	switch s := spec.(type) {
	case specification.ByNoteId:
		return v.NoteId == s.NoteID, nil
	case specification.ByVersionNumber:
		return v.VersionNumber == s.Number, nil
	case specification.OrderBy, specification.Pagination:
		return true, nil
	default:
		return false, fmt.Errorf("memory version repository: unsupported specification %T", spec)
	}
}

func (r *versionRepository) filter(specs ...specification.Specification) ([]*entity.Version, error) {
	var result []*entity.Version
	for _, v := range r.store.versions {
		match := true
		for _, spec := range specs {
			ok, err := versionMatches(v, spec)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, cloneVersion(v))
		}
	}
	// Newest first, mirroring the version ledger's list order.
	sort.Slice(result, func(i, j int) bool {
		return result[i].VersionNumber > result[j].VersionNumber
	})
	return result, nil
}

func (r *versionRepository) Create(ctx context.Context, version *entity.Version) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, v := range r.store.versions {
		if v.NoteId == version.NoteId && v.VersionNumber == version.VersionNumber {
			// Same error GORM's TranslateError yields for a unique
			// index violation, so services need no special casing.
			return gorm.ErrDuplicatedKey
		}
	}
	if version.Id == uuid.Nil {
		version.Id = uuid.New()
	}
	r.store.versions = append(r.store.versions, cloneVersion(version))
	return nil
}

func (r *versionRepository) FindLatest(ctx context.Context, noteId uuid.UUID) (*entity.Version, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	versions, err := r.filter(specification.ByNoteId{NoteID: noteId})
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, nil
	}
	return versions[0], nil
}

func (r *versionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Version, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	versions, err := r.filter(specs...)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, nil
	}
	return versions[0], nil
}

func (r *versionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Version, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.filter(specs...)
}

func (r *versionRepository) DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.versions[:0]
	for _, v := range r.store.versions {
		if v.NoteId != noteId {
			kept = append(kept, v)
		}
	}
	r.store.versions = kept
	return nil
}
