package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/rihlatech/go-portal/internal/i18n"
	"github.com/rihlatech/go-portal/internal/logging"
	"github.com/rihlatech/go-portal/pkg/interfaces"
)

// Service exposes catalog management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateEntryRequest) (*Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetBySlug(ctx context.Context, kind Kind, slug string) (*Entry, error)
	List(ctx context.Context, kind Kind, opts ListOptions) ([]*Entry, error)
	Update(ctx context.Context, req UpdateEntryRequest) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetDisplayOrders persists the ranks computed by a collection reorder as
	// independent per-record writes dispatched together. It reports the first
	// failure after the whole batch settles; local rollback is the caller's
	// responsibility.
	SetDisplayOrders(ctx context.Context, orders []EntryOrder) error
	// SetFlag persists one boolean column for one record.
	SetFlag(ctx context.Context, id uuid.UUID, flag Flag, value bool) error

	// EnsureCategory creates a category when its slug is absent and returns
	// the stored record either way. Seed flows call it idempotently.
	EnsureCategory(ctx context.Context, req EnsureCategoryRequest) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	// View resolves a single entry for display in the requested locale.
	View(ctx context.Context, kind Kind, slug string, locale string) (*EntryView, error)
	// ListViews resolves a whole collection for display.
	ListViews(ctx context.Context, kind Kind, locale string, opts ListOptions) ([]*EntryView, error)

	Resolver() i18n.Resolver
}

// CreateEntryRequest captures the information required to create an entry.
// Localized fields arrive as per-locale slots from the admin form binding.
type CreateEntryRequest struct {
	Kind     Kind
	Slug     string
	Title    FieldInput
	Summary  FieldInput
	Body     FieldInput
	Includes ListFieldInput
	Excludes ListFieldInput

	Price      *float64
	StartDate  *time.Time
	EndDate    *time.Time
	CoverImage string
	Images     []string

	IsActive   bool
	ComingSoon bool
	CategoryID *uuid.UUID
	Extras     map[string]any
}

// UpdateEntryRequest captures mutable fields for an entry. Nil pointers and
// nil maps leave the stored value untouched; localized slots merge against
// the stored record so untouched locales are preserved exactly.
type UpdateEntryRequest struct {
	ID       uuid.UUID
	Slug     *string
	Title    FieldInput
	Summary  FieldInput
	Body     FieldInput
	Includes ListFieldInput
	Excludes ListFieldInput

	Price      *float64
	StartDate  *time.Time
	EndDate    *time.Time
	CoverImage *string
	Images     []string

	IsActive   *bool
	ComingSoon *bool
	CategoryID *uuid.UUID
	// ClearCategory detaches the entry from its category.
	ClearCategory bool
	Extras        map[string]any
}

// EnsureCategoryRequest captures the information required to ensure a
// category exists.
type EnsureCategoryRequest struct {
	Slug         string
	Name         FieldInput
	DisplayOrder int
}

// EntryOrder pairs a record with its new zero-based rank.
type EntryOrder struct {
	ID           uuid.UUID
	DisplayOrder int
}

// ExtrasValidator checks kind-specific extra payloads before writes.
type ExtrasValidator interface {
	Validate(kind Kind, extras map[string]any) error
}

// MarkdownRenderer converts markdown bodies to HTML for blog views.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// EntryIDDeriver computes a stable identifier from an entry's canonical
// identity. Used by seeding and import flows so re-runs upsert instead of
// duplicating.
type EntryIDDeriver func(kind Kind, slug string) uuid.UUID

// WithEntryIDDeriver derives new entry identifiers from kind and slug
// instead of generating random ones.
func WithEntryIDDeriver(deriver EntryIDDeriver) ServiceOption {
	return func(s *service) {
		s.deriveID = deriver
	}
}

// CategoryIDDeriver computes a stable category identifier from its slug.
type CategoryIDDeriver func(slug string) uuid.UUID

// WithCategoryIDDeriver derives new category identifiers from the slug.
func WithCategoryIDDeriver(deriver CategoryIDDeriver) ServiceOption {
	return func(s *service) {
		s.deriveCategoryID = deriver
	}
}

// WithExtrasValidator wires kind-specific schema validation for extras.
func WithExtrasValidator(validator ExtrasValidator) ServiceOption {
	return func(s *service) {
		s.extras = validator
	}
}

// WithMarkdownRenderer enables HTML rendering of blog bodies in views.
func WithMarkdownRenderer(renderer MarkdownRenderer) ServiceOption {
	return func(s *service) {
		s.markdown = renderer
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// service implements Service.
type service struct {
	entries          EntryRepository
	categories       CategoryRepository
	resolver         i18n.Resolver
	now              func() time.Time
	id               IDGenerator
	deriveID         EntryIDDeriver
	deriveCategoryID CategoryIDDeriver
	extras           ExtrasValidator
	markdown         MarkdownRenderer
	logger           interfaces.Logger
}

// NewService constructs a catalog service with the required dependencies.
func NewService(entries EntryRepository, categories CategoryRepository, resolver i18n.Resolver, opts ...ServiceOption) Service {
	s := &service{
		entries:    entries,
		categories: categories,
		resolver:   resolver,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) Resolver() i18n.Resolver {
	return s.resolver
}

func (s *service) newEntryID(kind Kind, slug string) uuid.UUID {
	if s.deriveID != nil {
		if id := s.deriveID(kind, slug); id != uuid.Nil {
			return id
		}
	}
	return s.id()
}

// Create orchestrates creation of a new entry, appending it to the end of
// its kind's collection.
func (s *service) Create(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	if !req.Kind.Valid() {
		return nil, ErrKindInvalid
	}

	normalizedSlug, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.checkLocales(req.Title, req.Summary, req.Body); err != nil {
		return nil, err
	}
	if err := s.checkListLocales(req.Includes, req.Excludes); err != nil {
		return nil, err
	}

	title := i18n.Field{}.Merge(req.Title, s.resolver.Locales())
	if value, ok := title.Get(s.resolver.DefaultLocale()); !ok || strings.TrimSpace(value) == "" {
		return nil, ErrTitleRequired
	}

	if existing, err := s.entries.GetBySlug(ctx, req.Kind, normalizedSlug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil && !IsNotFound(err) {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, ErrCategoryInvalid
		}
	}

	if s.extras != nil && req.Extras != nil {
		if err := s.extras.Validate(req.Kind, req.Extras); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExtrasInvalid, err)
		}
	}

	siblings, err := s.entries.List(ctx, req.Kind, ListOptions{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Entry{
		ID:           s.newEntryID(req.Kind, normalizedSlug),
		Kind:         req.Kind,
		Slug:         normalizedSlug,
		Title:        title,
		Summary:      i18n.Field{}.Merge(req.Summary, s.resolver.Locales()),
		Body:         i18n.Field{}.Merge(req.Body, s.resolver.Locales()),
		Includes:     i18n.ListField{}.Merge(req.Includes, s.resolver.Locales()),
		Excludes:     i18n.ListField{}.Merge(req.Excludes, s.resolver.Locales()),
		Price:        req.Price,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CoverImage:   req.CoverImage,
		Images:       req.Images,
		IsActive:     req.IsActive,
		ComingSoon:   req.ComingSoon,
		DisplayOrder: len(siblings),
		CategoryID:   req.CategoryID,
		Extras:       cloneMap(req.Extras),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.entries.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog.entry.created", "kind", string(created.Kind), "slug", created.Slug)
	return created, nil
}

// Get fetches an entry by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if id == uuid.Nil {
		return nil, ErrEntryIDRequired
	}
	return s.entries.GetByID(ctx, id)
}

// GetBySlug fetches an entry by kind-scoped slug.
func (s *service) GetBySlug(ctx context.Context, kind Kind, slugValue string) (*Entry, error) {
	if !kind.Valid() {
		return nil, ErrKindInvalid
	}
	return s.entries.GetBySlug(ctx, kind, strings.TrimSpace(slugValue))
}

// List returns the kind's collection in presentation order.
func (s *service) List(ctx context.Context, kind Kind, opts ListOptions) ([]*Entry, error) {
	if !kind.Valid() {
		return nil, ErrKindInvalid
	}
	return s.entries.List(ctx, kind, opts)
}

// Update applies field-level changes. Localized slots merge against the
// stored record: an edit session that only touches one locale leaves every
// other locale's translation exactly as stored.
func (s *service) Update(ctx context.Context, req UpdateEntryRequest) (*Entry, error) {
	if req.ID == uuid.Nil {
		return nil, ErrEntryIDRequired
	}

	if err := s.checkLocales(req.Title, req.Summary, req.Body); err != nil {
		return nil, err
	}
	if err := s.checkListLocales(req.Includes, req.Excludes); err != nil {
		return nil, err
	}

	record, err := s.entries.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		normalizedSlug, err := normalizeSlug(*req.Slug)
		if err != nil {
			return nil, err
		}
		if normalizedSlug != record.Slug {
			if existing, err := s.entries.GetBySlug(ctx, record.Kind, normalizedSlug); err == nil && existing != nil {
				return nil, ErrSlugExists
			} else if err != nil && !IsNotFound(err) {
				return nil, err
			}
			record.Slug = normalizedSlug
		}
	}

	locales := s.resolver.Locales()
	if len(req.Title) > 0 {
		merged := record.Title.Merge(req.Title, locales)
		if value, ok := merged.Get(s.resolver.DefaultLocale()); !ok || strings.TrimSpace(value) == "" {
			return nil, ErrTitleRequired
		}
		record.Title = merged
	}
	if len(req.Summary) > 0 {
		record.Summary = record.Summary.Merge(req.Summary, locales)
	}
	if len(req.Body) > 0 {
		record.Body = record.Body.Merge(req.Body, locales)
	}
	if len(req.Includes) > 0 {
		record.Includes = record.Includes.Merge(req.Includes, locales)
	}
	if len(req.Excludes) > 0 {
		record.Excludes = record.Excludes.Merge(req.Excludes, locales)
	}

	if req.Price != nil {
		record.Price = req.Price
	}
	if req.StartDate != nil {
		record.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		record.EndDate = req.EndDate
	}
	if req.CoverImage != nil {
		record.CoverImage = *req.CoverImage
	}
	if req.Images != nil {
		record.Images = req.Images
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}
	if req.ComingSoon != nil {
		record.ComingSoon = *req.ComingSoon
	}
	if req.ClearCategory {
		record.CategoryID = nil
		record.Category = nil
	} else if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, ErrCategoryInvalid
		}
		record.CategoryID = req.CategoryID
	}
	if req.Extras != nil {
		if s.extras != nil {
			if err := s.extras.Validate(record.Kind, req.Extras); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrExtrasInvalid, err)
			}
		}
		record.Extras = cloneMap(req.Extras)
	}

	record.UpdatedAt = s.now()

	updated, err := s.entries.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog.entry.updated", "kind", string(updated.Kind), "slug", updated.Slug)
	return updated, nil
}

// Delete destructively removes an entry. Confirmation is the caller's
// responsibility; there is no soft delete.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrEntryIDRequired
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("catalog.entry.deleted", "id", id.String())
	return nil
}

// EnsureCategory creates the category when its slug is absent. Existing
// categories are returned unchanged so seed runs stay idempotent.
func (s *service) EnsureCategory(ctx context.Context, req EnsureCategoryRequest) (*Category, error) {
	normalizedSlug, err := normalizeSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.categories.GetBySlug(ctx, normalizedSlug)
	if err == nil {
		return existing, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	if err := s.checkLocales(req.Name); err != nil {
		return nil, err
	}
	name := i18n.Field{}.Merge(req.Name, s.resolver.Locales())
	if value, ok := name.Get(s.resolver.DefaultLocale()); !ok || strings.TrimSpace(value) == "" {
		return nil, ErrTitleRequired
	}

	id := s.id()
	if s.deriveCategoryID != nil {
		if derived := s.deriveCategoryID(normalizedSlug); derived != uuid.Nil {
			id = derived
		}
	}

	now := s.now()
	created, err := s.categories.Create(ctx, &Category{
		ID:           id,
		Slug:         normalizedSlug,
		Name:         name,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog.category.ensured", "slug", normalizedSlug, "id", created.ID.String())
	return created, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

// SetDisplayOrders dispatches one write per record and waits for the whole
// batch. The first failure is reported after every call settles so callers
// can roll their optimistic state back in one step.
func (s *service) SetDisplayOrders(ctx context.Context, orders []EntryOrder) error {
	if len(orders) == 0 {
		return nil
	}

	// A reorder re-indexes the whole collection, so the batch must cover
	// every sibling of the kind exactly once.
	first, err := s.entries.GetByID(ctx, orders[0].ID)
	if err != nil {
		return err
	}
	siblings, err := s.entries.List(ctx, first.Kind, ListOptions{})
	if err != nil {
		return err
	}
	if len(orders) != len(siblings) {
		return ErrDisplayOrderMismatch
	}
	ranked := make(map[uuid.UUID]struct{}, len(orders))
	for _, order := range orders {
		ranked[order.ID] = struct{}{}
	}
	if len(ranked) != len(orders) {
		return ErrDisplayOrderMismatch
	}
	for _, sibling := range siblings {
		if _, ok := ranked[sibling.ID]; !ok {
			return ErrDisplayOrderMismatch
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, order := range orders {
		wg.Add(1)
		go func(order EntryOrder) {
			defer wg.Done()
			if err := s.entries.UpdateDisplayOrder(ctx, order.ID, order.DisplayOrder); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(order)
	}
	wg.Wait()

	if firstErr != nil {
		s.logger.Error("catalog.reorder.failed", "error", firstErr)
		return firstErr
	}
	return nil
}

// SetFlag persists one boolean column for one record.
func (s *service) SetFlag(ctx context.Context, id uuid.UUID, flag Flag, value bool) error {
	if id == uuid.Nil {
		return ErrEntryIDRequired
	}
	if !flag.Valid() {
		return ErrFlagUnknown
	}
	return s.entries.UpdateFlag(ctx, id, flag, value)
}

// View resolves a single entry for display. A missing record surfaces as
// NotFoundError, never as an all-empty view.
func (s *service) View(ctx context.Context, kind Kind, slugValue string, locale string) (*EntryView, error) {
	record, err := s.GetBySlug(ctx, kind, slugValue)
	if err != nil {
		return nil, err
	}
	s.hydrateCategory(ctx, record)
	view := s.toView(record, locale)
	return &view, nil
}

// ListViews resolves a whole collection for display in presentation order.
func (s *service) ListViews(ctx context.Context, kind Kind, locale string, opts ListOptions) ([]*EntryView, error) {
	records, err := s.List(ctx, kind, opts)
	if err != nil {
		return nil, err
	}
	views := make([]*EntryView, 0, len(records))
	for _, record := range records {
		s.hydrateCategory(ctx, record)
		view := s.toView(record, locale)
		views = append(views, &view)
	}
	return views, nil
}

// hydrateCategory fills the category relation when the storage layer did not
// join it. Lookup failures degrade to a view without category.
func (s *service) hydrateCategory(ctx context.Context, record *Entry) {
	if record.Category != nil || record.CategoryID == nil {
		return
	}
	if category, err := s.categories.GetByID(ctx, *record.CategoryID); err == nil {
		record.Category = category
	}
}

func (s *service) checkLocales(inputs ...FieldInput) error {
	for _, input := range inputs {
		for code := range input {
			if !s.resolver.Supported(code) {
				return ErrUnknownLocale
			}
		}
	}
	return nil
}

func (s *service) checkListLocales(inputs ...ListFieldInput) error {
	for _, input := range inputs {
		for code := range input {
			if !s.resolver.Supported(code) {
				return ErrUnknownLocale
			}
		}
	}
	return nil
}

func normalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || !slug.IsValid(normalized) {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}
