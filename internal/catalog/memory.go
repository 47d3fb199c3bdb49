package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryEntryRepository is an in-memory implementation for scaffolding and tests.
type MemoryEntryRepository struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]*Entry
	slugIndex map[string]uuid.UUID

	// FailDisplayOrderFor makes UpdateDisplayOrder fail for specific IDs so
	// tests can exercise batch rollback.
	FailDisplayOrderFor map[uuid.UUID]error
	// FailFlagFor makes UpdateFlag fail for specific IDs.
	FailFlagFor map[uuid.UUID]error
}

// NewMemoryEntryRepository creates an empty in-memory entry repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		entries:   make(map[uuid.UUID]*Entry),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied entry.
func (m *MemoryEntryRepository) Create(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneEntry(record)
	m.entries[copied.ID] = copied
	m.slugIndex[copied.identifier()] = copied.ID
	return cloneEntry(copied), nil
}

// GetByID retrieves an entry by identifier.
func (m *MemoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entries[id]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: id.String()}
	}
	return cloneEntry(rec), nil
}

// GetBySlug retrieves an entry by kind-scoped slug.
func (m *MemoryEntryRepository) GetBySlug(_ context.Context, kind Kind, slug string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[string(kind)+"/"+slug]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: string(kind) + "/" + slug}
	}
	return cloneEntry(m.entries[id]), nil
}

// List returns the kind's collection ordered by display_order ascending,
// creation time descending on ties.
func (m *MemoryEntryRepository) List(_ context.Context, kind Kind, opts ListOptions) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Entry, 0, len(m.entries))
	for _, rec := range m.entries {
		if rec.Kind != kind {
			continue
		}
		if opts.ActiveOnly && !rec.IsActive {
			continue
		}
		if opts.CategoryID != nil && (rec.CategoryID == nil || *rec.CategoryID != *opts.CategoryID) {
			continue
		}
		out = append(out, cloneEntry(rec))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces the stored entry.
func (m *MemoryEntryRepository) Update(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.entries[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.identifier())

	copied := cloneEntry(record)
	m.entries[copied.ID] = copied
	m.slugIndex[copied.identifier()] = copied.ID
	return cloneEntry(copied), nil
}

// Delete removes the entry from the store.
func (m *MemoryEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.entries[id]
	if !ok {
		return &NotFoundError{Resource: "entry", Key: id.String()}
	}
	delete(m.slugIndex, rec.identifier())
	delete(m.entries, id)
	return nil
}

// UpdateDisplayOrder persists one record's rank.
func (m *MemoryEntryRepository) UpdateDisplayOrder(_ context.Context, id uuid.UUID, order int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, fail := m.FailDisplayOrderFor[id]; fail {
		return err
	}
	rec, ok := m.entries[id]
	if !ok {
		return &NotFoundError{Resource: "entry", Key: id.String()}
	}
	rec.DisplayOrder = order
	rec.UpdatedAt = time.Now()
	return nil
}

// UpdateFlag persists one record's boolean column.
func (m *MemoryEntryRepository) UpdateFlag(_ context.Context, id uuid.UUID, flag Flag, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, fail := m.FailFlagFor[id]; fail {
		return err
	}
	rec, ok := m.entries[id]
	if !ok {
		return &NotFoundError{Resource: "entry", Key: id.String()}
	}
	switch flag {
	case FlagActive:
		rec.IsActive = value
	case FlagComingSoon:
		rec.ComingSoon = value
	default:
		return ErrFlagUnknown
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func cloneEntry(src *Entry) *Entry {
	if src == nil {
		return nil
	}

	copied := *src
	if src.Images != nil {
		copied.Images = make([]string, len(src.Images))
		copy(copied.Images, src.Images)
	}
	if src.Extras != nil {
		copied.Extras = cloneMap(src.Extras)
	}
	if src.Price != nil {
		price := *src.Price
		copied.Price = &price
	}
	if src.CategoryID != nil {
		categoryID := *src.CategoryID
		copied.CategoryID = &categoryID
	}
	if src.Category != nil {
		category := *src.Category
		copied.Category = &category
	}
	copied.StartDate = cloneTimePtr(src.StartDate)
	copied.EndDate = cloneTimePtr(src.EndDate)
	return &copied
}

// MemoryCategoryRepository stores categories in-memory.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*Category
	slugIndex  map[string]uuid.UUID
}

// NewMemoryCategoryRepository constructs the repository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[uuid.UUID]*Category),
		slugIndex:  make(map[string]uuid.UUID),
	}
}

// Put inserts or replaces a category.
func (m *MemoryCategoryRepository) Put(category *Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *category
	m.categories[category.ID] = &copied
	m.slugIndex[category.Slug] = category.ID
}

// Create inserts the supplied category.
func (m *MemoryCategoryRepository) Create(_ context.Context, record *Category) (*Category, error) {
	m.Put(record)
	copied := *record
	return &copied, nil
}

// GetByID fetches a category.
func (m *MemoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	copied := *category
	return &copied, nil
}

// GetBySlug fetches a category by slug.
func (m *MemoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: slug}
	}
	copied := *m.categories[id]
	return &copied, nil
}

// List returns all categories ordered by display_order.
func (m *MemoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Category, 0, len(m.categories))
	for _, category := range m.categories {
		copied := *category
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
