package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/rihlatech/go-portal/internal/i18n"
)

func TestCatalogResolvesRequestedLocale(t *testing.T) {
	catalog := i18n.NewCatalog("en")
	if err := catalog.Add("en", i18n.Message{ID: "form.save", Other: "Save"}); err != nil {
		t.Fatalf("add en: %v", err)
	}
	if err := catalog.Add("ar", i18n.Message{ID: "form.save", Other: "حفظ"}); err != nil {
		t.Fatalf("add ar: %v", err)
	}

	if got := catalog.Get("ar", "form.save", nil); got != "حفظ" {
		t.Fatalf("expected arabic label, got %q", got)
	}
	if got := catalog.Get("en", "form.save", nil); got != "Save" {
		t.Fatalf("expected english label, got %q", got)
	}
}

func TestCatalogFallsBackToDefaultLocale(t *testing.T) {
	catalog := i18n.NewCatalog("en")
	if err := catalog.Add("en", i18n.Message{ID: "form.delete", Other: "Delete"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := catalog.Get("tr", "form.delete", nil); got != "Delete" {
		t.Fatalf("expected fallback to default locale, got %q", got)
	}
}

func TestCatalogUnknownIDReturnsID(t *testing.T) {
	catalog := i18n.NewCatalog("en")
	if got := catalog.Get("en", "form.unknown", nil); got != "form.unknown" {
		t.Fatalf("expected ID passthrough, got %q", got)
	}
}

func TestCatalogLoadsYAMLMessageFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"messages/en.yaml": {Data: []byte("form.save: Save\nform.cancel: Cancel\n")},
		"messages/fr.yaml": {Data: []byte("form.save: Enregistrer\n")},
	}

	catalog := i18n.NewCatalog("en")
	if err := catalog.LoadMessagesFS(fsys, "messages/en.yaml", "messages/fr.yaml"); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := catalog.Get("fr", "form.save", nil); got != "Enregistrer" {
		t.Fatalf("expected french label, got %q", got)
	}
	if got := catalog.Get("fr", "form.cancel", nil); got != "Cancel" {
		t.Fatalf("expected fallback for missing french label, got %q", got)
	}
}

func TestCatalogTemplateData(t *testing.T) {
	catalog := i18n.NewCatalog("en")
	if err := catalog.Add("en", i18n.Message{ID: "collection.count", Other: "{{.Count}} entries"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := catalog.Get("en", "collection.count", map[string]any{"Count": 3}); got != "3 entries" {
		t.Fatalf("expected templated label, got %q", got)
	}
}
