package bootstrap_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rihlatech/go-portal/catalog"
	"github.com/rihlatech/go-portal/cmd/internal/bootstrap"
)

func TestSplitLocales(t *testing.T) {
	got := bootstrap.SplitLocales(" en, ar ,,fr")
	want := []string{"en", "ar", "fr"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := bootstrap.SplitLocales(""); len(got) != 0 {
		t.Fatalf("expected no locales, got %v", got)
	}
}

func TestBuildModuleInMemory(t *testing.T) {
	module, err := bootstrap.BuildModule(bootstrap.Options{
		DefaultLocale: "en",
		Locales:       []string{"en", "ar"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	_, err = module.Catalog().Create(context.Background(), catalog.CreateEntryRequest{
		Kind:  catalog.KindTrip,
		Slug:  "smoke",
		Title: catalog.FieldInput{"en": "Smoke"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestBuildModuleSQLitePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "portal.db")

	module, err := bootstrap.BuildModule(bootstrap.Options{DBPath: dbPath})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ctx := context.Background()
	if _, err := module.Catalog().Create(ctx, catalog.CreateEntryRequest{
		Kind:  catalog.KindBlog,
		Slug:  "first-post",
		Title: catalog.FieldInput{"en": "First Post"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A second boot against the same file reapplies the schema without
	// error and sees the stored entry.
	reopened, err := bootstrap.BuildModule(bootstrap.Options{DBPath: dbPath})
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	entry, err := reopened.Catalog().GetBySlug(ctx, catalog.KindBlog, "first-post")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value, _ := entry.Title.Get("en"); value != "First Post" {
		t.Fatalf("expected persisted title, got %q", value)
	}
}
