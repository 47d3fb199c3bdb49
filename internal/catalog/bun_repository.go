package catalog

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunEntryRepository implements EntryRepository on top of go-repository-bun
// with optional read caching.
type BunEntryRepository struct {
	repo repository.Repository[*Entry]
	now  func() time.Time
}

// NewBunEntryRepository creates an entry repository without caching.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache creates an entry repository with optional caching.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRepository(db)
	return &BunEntryRepository{
		repo: wrapWithCache(base, cacheService, keySerializer),
		now:  time.Now,
	}
}

func (r *BunEntryRepository) Create(ctx context.Context, record *Entry) (*Entry, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("Category").
				Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "entry", id.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "entry", Key: id.String()}
	}
	return records[0], nil
}

func (r *BunEntryRepository) GetBySlug(ctx context.Context, kind Kind, slug string) (*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("Category").
				Where("?TableAlias.kind = ?", string(kind)).
				Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "entry", fmt.Sprintf("%s/%s", kind, slug))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "entry", Key: fmt.Sprintf("%s/%s", kind, slug)}
	}
	return records[0], nil
}

func (r *BunEntryRepository) List(ctx context.Context, kind Kind, opts ListOptions) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Relation("Category").
				Where("?TableAlias.kind = ?", string(kind))
			if opts.ActiveOnly {
				q = q.Where("?TableAlias.is_active = ?", true)
			}
			if opts.CategoryID != nil {
				q = q.Where("?TableAlias.category_id = ?", *opts.CategoryID)
			}
			return q.OrderExpr("?TableAlias.display_order ASC").
				OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	return records, err
}

func (r *BunEntryRepository) Update(ctx context.Context, record *Entry) (*Entry, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Entry{ID: id})
}

// UpdateDisplayOrder writes a single record's rank so batch reorders stay
// independent per record (the protocol rolls the whole batch back in the
// caller when any write fails). Routed through the wrapped repository so
// cached reads are invalidated.
func (r *BunEntryRepository) UpdateDisplayOrder(ctx context.Context, id uuid.UUID, order int) error {
	record := &Entry{ID: id, DisplayOrder: order, UpdatedAt: r.now()}
	_, err := r.repo.Update(ctx, record,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("display_order", "updated_at"),
	)
	return mapRepositoryError(err, "entry", id.String())
}

// UpdateFlag writes one whitelisted boolean column. Flag names come from the
// Flag constants, never from user input.
func (r *BunEntryRepository) UpdateFlag(ctx context.Context, id uuid.UUID, flag Flag, value bool) error {
	record := &Entry{ID: id, UpdatedAt: r.now()}
	switch flag {
	case FlagActive:
		record.IsActive = value
	case FlagComingSoon:
		record.ComingSoon = value
	default:
		return ErrFlagUnknown
	}
	_, err := r.repo.Update(ctx, record,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns(string(flag), "updated_at"),
	)
	return mapRepositoryError(err, "entry", id.String())
}

// BunCategoryRepository implements CategoryRepository with optional caching.
type BunCategoryRepository struct {
	repo repository.Repository[*Category]
}

// NewBunCategoryRepository creates a category repository without caching.
func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return NewBunCategoryRepositoryWithCache(db, nil, nil)
}

// NewBunCategoryRepositoryWithCache creates a category repository with optional caching.
func NewBunCategoryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryRepository {
	base := NewCategoryRepository(db)
	return &BunCategoryRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunCategoryRepository) Create(ctx context.Context, record *Category) (*Category, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "category", id.String())
	}
	return result, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "category", slug)
	}
	return result, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.display_order ASC")
		}),
	)
	return records, err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
