package portal_test

import (
	"errors"
	"testing"

	portal "github.com/rihlatech/go-portal"
)

func TestConfigValidateDefaultLocaleRequired(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.DefaultLocale = ""

	if err := cfg.Validate(); !errors.Is(err, portal.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestConfigValidateLocalesRequired(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Locales = nil

	if err := cfg.Validate(); !errors.Is(err, portal.ErrLocalesRequired) {
		t.Fatalf("expected ErrLocalesRequired, got %v", err)
	}
}

func TestConfigValidateDuplicateLocale(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Locales = []string{"en", "ar", "AR"}

	if err := cfg.Validate(); !errors.Is(err, portal.ErrDuplicateLocale) {
		t.Fatalf("expected ErrDuplicateLocale, got %v", err)
	}
}

func TestConfigValidateDefaultLocaleMustBeSupported(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.DefaultLocale = "de"

	if err := cfg.Validate(); !errors.Is(err, portal.ErrDefaultLocaleUnsupported) {
		t.Fatalf("expected ErrDefaultLocaleUnsupported, got %v", err)
	}
}

func TestConfigValidateAdvancedCacheRequiresCache(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Features.AdvancedCache = true

	if err := cfg.Validate(); !errors.Is(err, portal.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

func TestConfigValidateMarkdownRequiresFeature(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Markdown.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, portal.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired, got %v", err)
	}
}

func TestConfigValidateMarkdownContentDirRequired(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Features.Markdown = true
	cfg.Markdown.ContentDir = "  "

	if err := cfg.Validate(); !errors.Is(err, portal.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProvider(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, portal.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, portal.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidateLoggingLevelAndFormat(t *testing.T) {
	cfg := portal.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); !errors.Is(err, portal.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, portal.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	if err := portal.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}
