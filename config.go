package portal

import "github.com/rihlatech/go-portal/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired             = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnsupported          = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrLocalesRequired                   = runtimeconfig.ErrLocalesRequired
	ErrDuplicateLocale                   = runtimeconfig.ErrDuplicateLocale
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrMarkdownFeatureRequired           = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired        = runtimeconfig.ErrMarkdownContentDirRequired
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	RoutesConfig   = runtimeconfig.RoutesConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
