package catalog

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntryRepository abstracts storage operations for catalog entries. The
// backing store is the sole owner of durable state; in-memory collections
// are disposable caches reconciled against these writes.
type EntryRepository interface {
	Create(ctx context.Context, record *Entry) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetBySlug(ctx context.Context, kind Kind, slug string) (*Entry, error)
	List(ctx context.Context, kind Kind, opts ListOptions) ([]*Entry, error)
	Update(ctx context.Context, record *Entry) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateDisplayOrder persists one record's rank. Batch reorders issue one
	// call per affected record; the calls are independent, not transactional.
	UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error
	// UpdateFlag persists a single boolean column for one record.
	UpdateFlag(ctx context.Context, id uuid.UUID, flag Flag, value bool) error
}

// CategoryRepository resolves categories for nested relation lookups.
type CategoryRepository interface {
	Create(ctx context.Context, record *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

// Flag names the independently toggleable boolean columns on an entry.
type Flag string

const (
	FlagActive     Flag = "is_active"
	FlagComingSoon Flag = "coming_soon"
)

// Valid reports whether the flag names a known boolean column.
func (f Flag) Valid() bool {
	switch f {
	case FlagActive, FlagComingSoon:
		return true
	default:
		return false
	}
}

// NewEntryRepository creates the go-repository-bun backed entry repository.
func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(e *Entry) string {
			if e == nil {
				return ""
			}
			return e.Slug
		},
	})
}

// NewCategoryRepository creates the go-repository-bun backed category repository.
func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Category) string {
			if c == nil {
				return ""
			}
			return c.Slug
		},
	})
}
