package portal_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	portal "github.com/rihlatech/go-portal"
	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/di"
	"github.com/rihlatech/go-portal/pkg/testsupport"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	applyMigration(t, sqlDB, "20260105000000_initial_schema.up.sql")

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	return bunDB
}

func applyMigration(t *testing.T, db *sql.DB, name string) {
	t.Helper()

	source, err := os.ReadFile(filepath.Join("data", "sql", "migrations", "sqlite", name))
	if err != nil {
		source, err = os.ReadFile(filepath.Join("data", "sql", "migrations", name))
	}
	if err != nil {
		t.Fatalf("read migration %s: %v", name, err)
	}
	if _, err := db.Exec(string(source)); err != nil {
		t.Fatalf("apply migration %s: %v", name, err)
	}
}

func newModule(t *testing.T) (*portal.Module, *bun.DB) {
	t.Helper()

	cfg := portal.DefaultConfig()
	cfg.DefaultLocale = "en"
	cfg.Locales = []string{"en", "ar", "fr", "tr"}
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = 50 * time.Millisecond
	cfg.Routes = portal.RoutesConfig{
		RouteConfig: &urlkit.Config{
			Groups: []urlkit.GroupConfig{
				{
					Name:    "frontend",
					BaseURL: "https://rihla.example",
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
		},
		DefaultGroup: "frontend",
		LocaleGroups: map[string]string{"ar": "frontend.ar"},
	}

	bunDB := newBunDB(t)
	module, err := portal.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("new portal module: %v", err)
	}
	return module, bunDB
}

func TestModuleEntryLifecycleWithBun(t *testing.T) {
	module, _ := newModule(t)
	svc := module.Catalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, portal.CreateEntryRequest{
		Kind:     portal.KindTrip,
		Slug:     "cappadocia-balloons",
		Title:    portal.FieldInput{"en": "Cappadocia Balloons", "ar": "مناطيد كابادوكيا"},
		Summary:  portal.FieldInput{"en": "Three days over the valleys"},
		Includes: portal.ListFieldInput{"en": {"Hotel", "Breakfast"}},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Create(ctx, portal.CreateEntryRequest{
		Kind:  portal.KindTrip,
		Slug:  "cappadocia-balloons",
		Title: portal.FieldInput{"en": "Duplicate"},
	}); !errors.Is(err, catalog.ErrSlugExists) {
		t.Fatalf("expected slug conflict, got %v", err)
	}

	// A single-locale edit leaves the other stored locales untouched.
	updated, err := svc.Update(ctx, portal.UpdateEntryRequest{
		ID:    created.ID,
		Title: portal.FieldInput{"fr": "Montgolfières de Cappadoce"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if value, _ := updated.Title.Get("ar"); value != "مناطيد كابادوكيا" {
		t.Fatalf("expected arabic preserved, got %q", value)
	}

	view, err := svc.View(ctx, portal.KindTrip, "cappadocia-balloons", "tr")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Title != "Cappadocia Balloons" {
		t.Fatalf("expected fallback title, got %q", view.Title)
	}
	if view.Summary != "Three days over the valleys" {
		t.Fatalf("expected fallback summary, got %q", view.Summary)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !catalog.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestModuleReorderAndToggleWithBun(t *testing.T) {
	module, _ := newModule(t)
	svc := module.Catalog()
	ctx := context.Background()

	for _, slug := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, portal.CreateEntryRequest{
			Kind:     portal.KindProgram,
			Slug:     slug,
			Title:    portal.FieldInput{"en": slug},
			IsActive: true,
		}); err != nil {
			t.Fatalf("create %q: %v", slug, err)
		}
	}

	collection, err := module.LoadCollection(ctx, portal.KindProgram)
	if err != nil {
		t.Fatalf("load collection: %v", err)
	}
	if err := collection.Move(2, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := collection.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	records, err := svc.List(ctx, portal.KindProgram, portal.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"third", "first", "second"}
	for i, record := range records {
		if record.Slug != want[i] {
			t.Fatalf("expected %v, got %q at %d", want, record.Slug, i)
		}
		if record.DisplayOrder != i {
			t.Fatalf("expected dense rank %d, got %d", i, record.DisplayOrder)
		}
	}

	// Toggling a flag leaves every display order untouched.
	target := records[1]
	if err := svc.SetFlag(ctx, target.ID, portal.FlagComingSoon, true); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	after, err := svc.Get(ctx, target.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !after.ComingSoon || after.DisplayOrder != 1 {
		t.Fatalf("expected flag set and rank untouched, got %+v", after)
	}
}

func TestModuleBlogRenderingAndURLs(t *testing.T) {
	module, _ := newModule(t)
	svc := module.Catalog()
	ctx := context.Background()

	if _, err := svc.Create(ctx, portal.CreateEntryRequest{
		Kind:     portal.KindBlog,
		Slug:     "travel-tips",
		Title:    portal.FieldInput{"en": "Travel tips"},
		Body:     portal.FieldInput{"en": "# Pack light\n\nOne bag is enough."},
		IsActive: true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.View(ctx, portal.KindBlog, "travel-tips", "en")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !strings.Contains(view.BodyHTML, "<h1") {
		t.Fatalf("expected rendered markdown, got %q", view.BodyHTML)
	}

	url, err := module.URLs().EntryURL(portal.KindBlog, "travel-tips", "en")
	if err != nil {
		t.Fatalf("resolve url: %v", err)
	}
	if !strings.HasSuffix(url, "/blog/travel-tips") {
		t.Fatalf("expected public url, got %q", url)
	}

	arabic, err := module.URLs().EntryURL(portal.KindBlog, "travel-tips", "ar")
	if err != nil {
		t.Fatalf("resolve arabic url: %v", err)
	}
	if !strings.Contains(arabic, "/ar/") {
		t.Fatalf("expected locale path, got %q", arabic)
	}
}

func TestModuleLegacyBareStringsSurviveStorage(t *testing.T) {
	module, bunDB := newModule(t)
	svc := module.Catalog()
	ctx := context.Background()

	// Rows written before localization carry a bare JSON string in the
	// title column instead of a locale map.
	if _, err := bunDB.ExecContext(ctx,
		"INSERT INTO entries (id, kind, slug, title, is_active) VALUES (?, ?, ?, ?, ?)",
		uuid.New().String(), "destination", "trabzon", `"Trabzon"`, true,
	); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	record, err := svc.GetBySlug(ctx, portal.KindDestination, "trabzon")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !record.Title.IsPlain() {
		t.Fatal("expected legacy bare value")
	}

	// The bare value answers every locale until an edit expands it.
	view, err := svc.View(ctx, portal.KindDestination, "trabzon", "ar")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Title != "Trabzon" {
		t.Fatalf("expected bare value, got %q", view.Title)
	}

	updated, err := svc.Update(ctx, portal.UpdateEntryRequest{
		ID:    record.ID,
		Title: portal.FieldInput{"ar": "طرابزون"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if value, _ := updated.Title.Get("en"); value != "Trabzon" {
		t.Fatalf("expected legacy text expanded into en, got %q", value)
	}
	if value, _ := updated.Title.Get("ar"); value != "طرابزون" {
		t.Fatalf("expected arabic slot written, got %q", value)
	}
	if updated.Title.IsPlain() {
		t.Fatal("expected expanded map after edit")
	}
}

func TestModuleImporterCreatesBlogEntries(t *testing.T) {
	module, _ := newModule(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"posts/istanbul.en.md": {Data: []byte("---\ntitle: Istanbul weekend\n---\nStart at the spice bazaar.")},
		"posts/istanbul.ar.md": {Data: []byte("---\ntitle: عطلة اسطنبول\n---\nابدأ من البازار.")},
	}

	report, err := module.Importer().ImportFS(ctx, fsys)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("expected one created entry, got %+v", report)
	}

	record, err := module.Catalog().GetBySlug(ctx, portal.KindBlog, "istanbul")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value, _ := record.Title.Get("ar"); value != "عطلة اسطنبول" {
		t.Fatalf("expected arabic title from import, got %q", value)
	}
}
