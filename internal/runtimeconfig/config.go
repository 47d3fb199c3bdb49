package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrDefaultLocaleRequired indicates the configuration is missing a default locale.
var ErrDefaultLocaleRequired = errors.New("portal config: default locale is required")

// ErrDefaultLocaleUnsupported flags a default locale absent from the supported set.
var ErrDefaultLocaleUnsupported = errors.New("portal config: default locale must be part of the supported locales")

// ErrLocalesRequired indicates no supported locales were configured.
var ErrLocalesRequired = errors.New("portal config: at least one supported locale is required")

// ErrDuplicateLocale flags a locale code listed more than once.
var ErrDuplicateLocale = errors.New("portal config: duplicate locale code")

// ErrAdvancedCacheRequiresEnabledCache ensures the repository cache only builds when caching is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("portal config: advanced cache feature requires cache to be enabled")

var ErrMarkdownFeatureRequired = errors.New("portal config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("portal config: markdown content directory is required when markdown is enabled")
var ErrLoggingProviderRequired = errors.New("portal config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("portal config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("portal config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("portal config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the portal module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Locales       []string
	Storage       StorageConfig
	Cache         CacheConfig
	Routes        RoutesConfig
	Markdown      MarkdownConfig
	Features      Features
	Logging       LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig captures routing configuration for public URL resolution.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	// DefaultGroup is the route group used when no locale-specific group matches.
	DefaultGroup string
	// LocaleGroups maps locale codes to urlkit route groups.
	LocaleGroups map[string]string
	SlugParam    string
	LocaleParam  string
}

// MarkdownConfig captures blog import behaviour.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	// LocalePatterns maps locale codes to filename suffix patterns (e.g. "*.ar.md").
	LocalePatterns map[string]string
}

// Features toggles module functionality.
type Features struct {
	Markdown      bool
	AdvancedCache bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the baseline portal configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Locales:       []string{"en", "ar", "fr", "tr"},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Routes: RoutesConfig{},
		Markdown: MarkdownConfig{
			ContentDir:     "content",
			Pattern:        "*.md",
			Recursive:      true,
			LocalePatterns: map[string]string{},
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.Locales) == 0 {
		return ErrLocalesRequired
	}

	seen := make(map[string]struct{}, len(cfg.Locales))
	hasDefault := false
	for _, code := range cfg.Locales {
		normalized := normalizeLocale(code)
		if _, dup := seen[normalized]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLocale, normalized)
		}
		seen[normalized] = struct{}{}
		if normalized == normalizeLocale(cfg.DefaultLocale) {
			hasDefault = true
		}
	}
	if !hasDefault {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, cfg.DefaultLocale)
	}

	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeLocale(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
