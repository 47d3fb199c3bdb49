package urls

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/i18n"
	"github.com/rihlatech/go-portal/internal/runtimeconfig"
)

// ResolverOptions configures the go-urlkit backed public URL resolver.
type ResolverOptions struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	// LocaleGroups maps locale codes to route group paths (dot separated for
	// nested groups, e.g. "frontend.ar").
	LocaleGroups map[string]string
	// Routes maps entry kinds to route names. A kind without a mapping uses
	// its own name as the route.
	Routes      map[catalog.Kind]string
	SlugParam   string
	LocaleParam string
}

// Resolver builds public site URLs for catalog entries. Locale selection
// happens through route groups so localized path segments ("/ar/rihlat/...")
// come from configuration, not string concatenation.
type Resolver struct {
	manager      *urlkit.RouteManager
	defaultGroup string
	localeGroups map[string]string
	routes       map[catalog.Kind]string
	slugParam    string
	localeParam  string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewResolver constructs a resolver backed by go-urlkit.
func NewResolver(opts ResolverOptions) *Resolver {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	return &Resolver{
		manager:      opts.Manager,
		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		localeGroups: opts.LocaleGroups,
		routes:       opts.Routes,
		slugParam:    opts.SlugParam,
		localeParam:  strings.TrimSpace(opts.LocaleParam),
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// FromConfig builds a resolver from the runtime routing configuration.
// Returns nil when no route config is present; callers treat a nil resolver
// as "no public URLs".
func FromConfig(cfg runtimeconfig.RoutesConfig) *Resolver {
	if cfg.RouteConfig == nil {
		return nil
	}
	return NewResolver(ResolverOptions{
		Manager:      urlkit.NewRouteManager(cfg.RouteConfig),
		DefaultGroup: cfg.DefaultGroup,
		LocaleGroups: cfg.LocaleGroups,
		SlugParam:    cfg.SlugParam,
		LocaleParam:  cfg.LocaleParam,
	})
}

// EntryURL resolves the public URL of one entry in the given locale.
func (r *Resolver) EntryURL(kind catalog.Kind, slug string, locale string) (string, error) {
	if r == nil || r.manager == nil {
		return "", nil
	}

	group, err := r.groupForLocale(locale)
	if err != nil || group == nil {
		return "", err
	}

	routeName := string(kind)
	if r.routes != nil {
		if name, ok := r.routes[kind]; ok && strings.TrimSpace(name) != "" {
			routeName = strings.TrimSpace(name)
		}
	}

	builder, err := safeBuilder(group, routeName)
	if err != nil {
		return "", err
	}

	builder.WithParam(r.slugParam, slug)
	if r.localeParam != "" {
		builder.WithParam(r.localeParam, i18n.NormalizeLocale(locale))
	}

	return builder.Build()
}

// ViewURL resolves the public URL for an already-projected view.
func (r *Resolver) ViewURL(view *catalog.EntryView) (string, error) {
	if view == nil {
		return "", nil
	}
	return r.EntryURL(view.Kind, view.Slug, view.Locale)
}

func (r *Resolver) groupForLocale(locale string) (*urlkit.Group, error) {
	groupPath := r.defaultGroup
	if r.localeGroups != nil {
		if path, ok := r.localeGroups[i18n.NormalizeLocale(locale)]; ok && strings.TrimSpace(path) != "" {
			groupPath = strings.TrimSpace(path)
		}
	}
	if groupPath == "" {
		return nil, nil
	}
	return r.groupForPath(groupPath)
}

func (r *Resolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// urlkit panics on unknown groups and routes; these wrappers turn that into
// errors the caller can handle.
func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("urls: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("urls: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("urls: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
