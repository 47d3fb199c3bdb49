package di

import (
	"database/sql"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/identity"
	"github.com/rihlatech/go-portal/internal/i18n"
	"github.com/rihlatech/go-portal/internal/logging"
	"github.com/rihlatech/go-portal/internal/logging/gologger"
	"github.com/rihlatech/go-portal/internal/markdown"
	"github.com/rihlatech/go-portal/internal/runtimeconfig"
	"github.com/rihlatech/go-portal/internal/urls"
	"github.com/rihlatech/go-portal/internal/validation"
	"github.com/rihlatech/go-portal/pkg/interfaces"
)

// Container wires the portal's services from configuration. Defaults favor
// in-memory repositories so the module boots without a database; WithBunDB
// switches persistence to bun-backed repositories with optional caching.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	entryRepo    catalog.EntryRepository
	categoryRepo catalog.CategoryRepository

	deterministicIDs bool

	resolver       i18n.Resolver
	messages       *i18n.Catalog
	catalogSvc     catalog.Service
	renderer       *markdown.Renderer
	importer       *markdown.Importer
	extras         *validation.ExtrasRegistry
	urlResolver    *urls.Resolver
	loggerProvider interfaces.LoggerProvider
}

// Option overrides container defaults.
type Option func(*Container)

// WithBunDB backs the catalog repositories with the given database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithPostgresDB backs the catalog repositories with a postgres connection.
func WithPostgresDB(sqlDB *sql.DB) Option {
	return func(c *Container) {
		c.bunDB = bun.NewDB(sqlDB, pgdialect.New())
	}
}

// WithDeterministicEntryIDs derives entry identifiers from kind and slug so
// seed and import runs upsert instead of duplicating.
func WithDeterministicEntryIDs() Option {
	return func(c *Container) {
		c.deterministicIDs = true
	}
}

// WithMessageCatalog installs the admin chrome message catalog.
func WithMessageCatalog(messages *i18n.Catalog) Option {
	return func(c *Container) {
		c.messages = messages
	}
}

// WithCache supplies the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCatalogService replaces the catalog service entirely.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithLoggerProvider replaces the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithExtrasRegistry installs a pre-populated extras schema registry.
func WithExtrasRegistry(registry *validation.ExtrasRegistry) Option {
	return func(c *Container) {
		c.extras = registry
	}
}

// WithRepositories injects explicit repository implementations.
func WithRepositories(entries catalog.EntryRepository, categories catalog.CategoryRepository) Option {
	return func(c *Container) {
		c.entryRepo = entries
		c.categoryRepo = categories
	}
}

// NewContainer validates the configuration and assembles the service graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		resolver: i18n.NewResolver(cfg.DefaultLocale, cfg.Locales...),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil {
		return
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		c.loggerProvider = noopProvider{}
		return
	}
	c.loggerProvider = provider
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.entryRepo != nil && c.categoryRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.entryRepo = catalog.NewBunEntryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.categoryRepo = catalog.NewBunCategoryRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.entryRepo = catalog.NewMemoryEntryRepository()
	c.categoryRepo = catalog.NewMemoryCategoryRepository()
}

func (c *Container) configureServices() {
	if c.extras == nil {
		c.extras = validation.NewExtrasRegistry()
	}
	c.renderer = markdown.NewRenderer(markdown.Options{})
	c.urlResolver = urls.FromConfig(c.Config.Routes)

	if c.messages == nil {
		c.messages = i18n.NewCatalog(c.Config.DefaultLocale)
	}

	if c.catalogSvc == nil {
		svcOpts := []catalog.ServiceOption{
			catalog.WithExtrasValidator(c.extras),
			catalog.WithMarkdownRenderer(c.renderer),
			catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)),
		}
		if c.deterministicIDs {
			svcOpts = append(svcOpts,
				catalog.WithEntryIDDeriver(func(kind catalog.Kind, slug string) uuid.UUID {
					return identity.EntryUUID(string(kind), slug)
				}),
				catalog.WithCategoryIDDeriver(identity.CategoryUUID),
			)
		}
		c.catalogSvc = catalog.NewService(c.entryRepo, c.categoryRepo, c.resolver, svcOpts...)
	}

	c.importer = markdown.NewImporter(
		c.catalogSvc,
		markdown.ImporterWithLogger(logging.MarkdownLogger(c.loggerProvider)),
	)
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// Resolver returns the locale resolver.
func (c *Container) Resolver() i18n.Resolver {
	return c.resolver
}

// Messages returns the admin chrome message catalog.
func (c *Container) Messages() *i18n.Catalog {
	return c.messages
}

// Renderer returns the markdown renderer.
func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

// Importer returns the blog importer.
func (c *Container) Importer() *markdown.Importer {
	return c.importer
}

// Extras returns the extras schema registry.
func (c *Container) Extras() *validation.ExtrasRegistry {
	return c.extras
}

// URLResolver returns the public URL resolver, nil when routing is not
// configured.
func (c *Container) URLResolver() *urls.Resolver {
	return c.urlResolver
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
