package portal

import (
	"context"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/commands"
	"github.com/rihlatech/go-portal/internal/di"
	"github.com/rihlatech/go-portal/internal/forms"
	"github.com/rihlatech/go-portal/internal/i18n"
	"github.com/rihlatech/go-portal/internal/markdown"
	"github.com/rihlatech/go-portal/internal/ordering"
	"github.com/rihlatech/go-portal/internal/urls"
	"github.com/rihlatech/go-portal/internal/validation"
)

// CatalogService exports the catalog service contract for consumers of the
// portal package.
type CatalogService = catalog.Service

// Entry exports the stored entry record.
type Entry = catalog.Entry

// EntryView exports the locale-resolved entry projection.
type EntryView = catalog.EntryView

// Kind exports the entry kind discriminator.
type Kind = catalog.Kind

// Entry kinds managed by the portal.
const (
	KindTrip               = catalog.KindTrip
	KindProgram            = catalog.KindProgram
	KindService            = catalog.KindService
	KindSpecialPackage     = catalog.KindSpecialPackage
	KindVIPService         = catalog.KindVIPService
	KindImmigrationService = catalog.KindImmigrationService
	KindBlog               = catalog.KindBlog
	KindDestination        = catalog.KindDestination
)

// Toggleable entry flags.
const (
	FlagActive     = catalog.FlagActive
	FlagComingSoon = catalog.FlagComingSoon
)

// Request and option types re-exported for host applications.
type (
	CreateEntryRequest = catalog.CreateEntryRequest
	UpdateEntryRequest = catalog.UpdateEntryRequest
	EntryOrder         = catalog.EntryOrder
	ListOptions        = catalog.ListOptions
	FieldInput         = catalog.FieldInput
	ListFieldInput     = catalog.ListFieldInput
)

// FormSession exports the admin multilingual edit session.
type FormSession = forms.Session

// OrderedCollection exports the drag-reorder collection.
type OrderedCollection = ordering.Collection

// Module is the top level portal runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a portal module from configuration and optional DI
// overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	messages, err := defaultMessageCatalog(cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]di.Option{di.WithMessageCatalog(messages)}, opts...)

	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Resolver returns the locale resolver shared by every service.
func (m *Module) Resolver() i18n.Resolver {
	return m.container.Resolver()
}

// NewFormSession starts a multilingual admin edit session.
func (m *Module) NewFormSession() *FormSession {
	return forms.NewSession(m.container.Resolver(), forms.WithMessages(m.container.Messages()))
}

// Messages returns the admin chrome message catalog.
func (m *Module) Messages() *i18n.Catalog {
	return m.container.Messages()
}

// LoadCollection builds the drag-reorder collection for one kind's entries.
func (m *Module) LoadCollection(ctx context.Context, kind Kind) (*OrderedCollection, error) {
	return ordering.Load(ctx, m.container.CatalogService(), kind)
}

// Renderer returns the markdown body renderer.
func (m *Module) Renderer() *markdown.Renderer {
	return m.container.Renderer()
}

// Importer returns the markdown blog importer.
func (m *Module) Importer() *markdown.Importer {
	return m.container.Importer()
}

// Extras returns the per-kind extras schema registry.
func (m *Module) Extras() *validation.ExtrasRegistry {
	return m.container.Extras()
}

// URLs returns the public URL resolver, nil when routing is not configured.
func (m *Module) URLs() *urls.Resolver {
	return m.container.URLResolver()
}

// CreateEntryHandler returns the create-entry command handler.
func (m *Module) CreateEntryHandler() *commands.Handler[commands.CreateEntryCommand] {
	return commands.NewCreateEntryHandler(m.Catalog())
}

// UpdateEntryHandler returns the update-entry command handler.
func (m *Module) UpdateEntryHandler() *commands.Handler[commands.UpdateEntryCommand] {
	return commands.NewUpdateEntryHandler(m.Catalog())
}

// DeleteEntryHandler returns the delete-entry command handler.
func (m *Module) DeleteEntryHandler() *commands.Handler[commands.DeleteEntryCommand] {
	return commands.NewDeleteEntryHandler(m.Catalog())
}

// ReorderEntriesHandler returns the reorder command handler.
func (m *Module) ReorderEntriesHandler() *commands.Handler[commands.ReorderEntriesCommand] {
	return commands.NewReorderEntriesHandler(m.Catalog())
}

// ToggleEntryFlagHandler returns the flag-toggle command handler.
func (m *Module) ToggleEntryFlagHandler() *commands.Handler[commands.ToggleEntryFlagCommand] {
	return commands.NewToggleEntryFlagHandler(m.Catalog())
}
