package urls_test

import (
	"strings"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/runtimeconfig"
	"github.com/rihlatech/go-portal/internal/urls"
)

func routeConfig() *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "frontend",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"trip": "/trips/:slug",
					"blog": "/blog/:slug",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name: "ar",
						Path: "/ar",
						Paths: map[string]string{
							"trip": "/rihlat/:slug",
							"blog": "/mudawana/:slug",
						},
					},
				},
			},
		},
	}
}

func newResolver() *urls.Resolver {
	return urls.FromConfig(runtimeconfig.RoutesConfig{
		RouteConfig:  routeConfig(),
		DefaultGroup: "frontend",
		LocaleGroups: map[string]string{
			"ar": "frontend.ar",
		},
	})
}

func TestEntryURLDefaultLocale(t *testing.T) {
	resolver := newResolver()

	url, err := resolver.EntryURL(catalog.KindTrip, "cappadocia", "en")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasSuffix(url, "/trips/cappadocia") {
		t.Fatalf("expected default group path, got %q", url)
	}
}

func TestEntryURLLocaleGroup(t *testing.T) {
	resolver := newResolver()

	url, err := resolver.EntryURL(catalog.KindTrip, "cappadocia", "ar")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(url, "/ar/") || !strings.Contains(url, "/rihlat/cappadocia") {
		t.Fatalf("expected localized path, got %q", url)
	}
}

func TestEntryURLUnknownRoute(t *testing.T) {
	resolver := newResolver()

	if _, err := resolver.EntryURL(catalog.KindDestination, "trabzon", "en"); err == nil {
		t.Fatal("expected error for unmapped route")
	}
}

func TestNilResolverDegrades(t *testing.T) {
	resolver := urls.FromConfig(runtimeconfig.RoutesConfig{})
	if resolver != nil {
		t.Fatal("expected nil resolver without route config")
	}

	url, err := resolver.EntryURL(catalog.KindTrip, "x", "en")
	if err != nil || url != "" {
		t.Fatalf("expected empty resolution, got %q %v", url, err)
	}
}
