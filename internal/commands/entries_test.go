package commands_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/commands"
	"github.com/rihlatech/go-portal/internal/i18n"
)

func newCatalogService(t *testing.T) (catalog.Service, *catalog.MemoryEntryRepository) {
	t.Helper()
	entries := catalog.NewMemoryEntryRepository()
	categories := catalog.NewMemoryCategoryRepository()
	svc := catalog.NewService(entries, categories, i18n.NewResolver("en", "ar"))
	return svc, entries
}

func TestCreateEntryCommand(t *testing.T) {
	svc, _ := newCatalogService(t)
	handler := commands.NewCreateEntryHandler(svc)
	ctx := context.Background()

	err := handler.Execute(ctx, commands.CreateEntryCommand{
		Kind:     "trip",
		Slug:     "red-sea",
		Title:    map[string]string{"en": "Red Sea"},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	record, err := svc.GetBySlug(ctx, catalog.KindTrip, "red-sea")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value, _ := record.Title.Get("en"); value != "Red Sea" {
		t.Fatalf("expected title persisted, got %q", value)
	}
}

func TestCreateEntryCommandValidation(t *testing.T) {
	svc, _ := newCatalogService(t)
	handler := commands.NewCreateEntryHandler(svc)

	err := handler.Execute(context.Background(), commands.CreateEntryCommand{
		Kind: "brochure",
		Slug: "x",
	})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestUpdateEntryCommandMergesLocales(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateEntryRequest{
		Kind:  catalog.KindBlog,
		Slug:  "notes",
		Title: catalog.FieldInput{"en": "Notes", "ar": "ملاحظات"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	handler := commands.NewUpdateEntryHandler(svc)
	if err := handler.Execute(ctx, commands.UpdateEntryCommand{
		ID:    created.ID,
		Title: map[string]string{"en": "Field notes"},
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	record, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value, _ := record.Title.Get("ar"); value != "ملاحظات" {
		t.Fatalf("expected arabic preserved, got %q", value)
	}
}

func TestDeleteEntryCommand(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateEntryRequest{
		Kind:  catalog.KindTrip,
		Slug:  "gone",
		Title: catalog.FieldInput{"en": "Gone"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	handler := commands.NewDeleteEntryHandler(svc)
	if err := handler.Execute(ctx, commands.DeleteEntryCommand{ID: created.ID}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !catalog.IsNotFound(err) {
		t.Fatalf("expected deleted, got %v", err)
	}

	if err := handler.Execute(ctx, commands.DeleteEntryCommand{}); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure for nil id, got %v", err)
	}
}

func TestReorderEntriesCommand(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, slug := range []string{"a", "b"} {
		created, err := svc.Create(ctx, catalog.CreateEntryRequest{
			Kind:  catalog.KindTrip,
			Slug:  slug,
			Title: catalog.FieldInput{"en": slug},
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, created.ID)
	}

	handler := commands.NewReorderEntriesHandler(svc)
	if err := handler.Execute(ctx, commands.ReorderEntriesCommand{
		Kind: "trip",
		Ranks: []commands.EntryRank{
			{ID: ids[1], DisplayOrder: 0},
			{ID: ids[0], DisplayOrder: 1},
		},
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	records, err := svc.List(ctx, catalog.KindTrip, catalog.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if records[0].Slug != "b" || records[1].Slug != "a" {
		t.Fatalf("expected reordered records, got %q %q", records[0].Slug, records[1].Slug)
	}
}

func TestReorderEntriesCommandRejectsSparseRanks(t *testing.T) {
	svc, _ := newCatalogService(t)
	handler := commands.NewReorderEntriesHandler(svc)

	cases := []struct {
		name  string
		ranks []commands.EntryRank
	}{
		{
			name: "rank out of range",
			ranks: []commands.EntryRank{
				{ID: uuid.New(), DisplayOrder: 0},
				{ID: uuid.New(), DisplayOrder: 5},
			},
		},
		{
			name: "duplicate rank",
			ranks: []commands.EntryRank{
				{ID: uuid.New(), DisplayOrder: 0},
				{ID: uuid.New(), DisplayOrder: 0},
			},
		},
		{
			name: "duplicate id",
			ranks: func() []commands.EntryRank {
				id := uuid.New()
				return []commands.EntryRank{
					{ID: id, DisplayOrder: 0},
					{ID: id, DisplayOrder: 1},
				}
			}(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := handler.Execute(context.Background(), commands.ReorderEntriesCommand{Kind: "trip", Ranks: tc.ranks})
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation failure, got %v", err)
			}
		})
	}
}

func TestReorderEntriesCommandSurfacesStoreFailure(t *testing.T) {
	svc, entries := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateEntryRequest{
		Kind:  catalog.KindTrip,
		Slug:  "solo",
		Title: catalog.FieldInput{"en": "Solo"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("write failed")
	entries.FailDisplayOrderFor = map[uuid.UUID]error{created.ID: boom}

	handler := commands.NewReorderEntriesHandler(svc)
	err = handler.Execute(ctx, commands.ReorderEntriesCommand{
		Kind:  "trip",
		Ranks: []commands.EntryRank{{ID: created.ID, DisplayOrder: 0}},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store failure surfaced, got %v", err)
	}
}

func TestToggleEntryFlagCommand(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateEntryRequest{
		Kind:  catalog.KindTrip,
		Slug:  "toggle",
		Title: catalog.FieldInput{"en": "Toggle"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	handler := commands.NewToggleEntryFlagHandler(svc)
	if err := handler.Execute(ctx, commands.ToggleEntryFlagCommand{
		ID:    created.ID,
		Flag:  "is_active",
		Value: true,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	record, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !record.IsActive {
		t.Fatal("expected flag persisted")
	}

	err = handler.Execute(ctx, commands.ToggleEntryFlagCommand{ID: created.ID, Flag: "featured"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation failure for unknown flag, got %v", err)
	}
}
