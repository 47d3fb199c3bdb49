package commands

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/rihlatech/go-portal/internal/catalog"
)

const (
	createEntryMessageType  = "portal.catalog.entry.create"
	updateEntryMessageType  = "portal.catalog.entry.update"
	deleteEntryMessageType  = "portal.catalog.entry.delete"
	reorderEntryMessageType = "portal.catalog.entry.reorder"
	toggleEntryMessageType  = "portal.catalog.entry.toggle"
)

// CreateEntryCommand requests creation of a catalog entry.
type CreateEntryCommand struct {
	Kind       string              `json:"kind"`
	Slug       string              `json:"slug"`
	Title      map[string]string   `json:"title"`
	Summary    map[string]string   `json:"summary,omitempty"`
	Body       map[string]string   `json:"body,omitempty"`
	Includes   map[string][]string `json:"includes,omitempty"`
	Excludes   map[string][]string `json:"excludes,omitempty"`
	Price      *float64            `json:"price,omitempty"`
	StartDate  *time.Time          `json:"start_date,omitempty"`
	EndDate    *time.Time          `json:"end_date,omitempty"`
	CoverImage string              `json:"cover_image,omitempty"`
	Images     []string            `json:"images,omitempty"`
	IsActive   bool                `json:"is_active"`
	ComingSoon bool                `json:"coming_soon"`
	CategoryID *uuid.UUID          `json:"category_id,omitempty"`
	Extras     map[string]any      `json:"extras,omitempty"`
}

// Type implements command.Message.
func (CreateEntryCommand) Type() string { return createEntryMessageType }

// Validate ensures the command carries the minimum viable payload.
func (m CreateEntryCommand) Validate() error {
	errs := validation.Errors{}
	if !catalog.NormalizeKind(m.Kind).Valid() {
		errs["kind"] = validation.NewError("portal.catalog.entry.create.kind_invalid", "kind is not a known collection")
	}
	if m.Slug == "" {
		errs["slug"] = validation.NewError("portal.catalog.entry.create.slug_required", "slug is required")
	}
	if len(m.Title) == 0 {
		errs["title"] = validation.NewError("portal.catalog.entry.create.title_required", "title is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (m CreateEntryCommand) request() catalog.CreateEntryRequest {
	return catalog.CreateEntryRequest{
		Kind:       catalog.NormalizeKind(m.Kind),
		Slug:       m.Slug,
		Title:      catalog.FieldInput(m.Title),
		Summary:    catalog.FieldInput(m.Summary),
		Body:       catalog.FieldInput(m.Body),
		Includes:   catalog.ListFieldInput(m.Includes),
		Excludes:   catalog.ListFieldInput(m.Excludes),
		Price:      m.Price,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		CoverImage: m.CoverImage,
		Images:     m.Images,
		IsActive:   m.IsActive,
		ComingSoon: m.ComingSoon,
		CategoryID: m.CategoryID,
		Extras:     m.Extras,
	}
}

// NewCreateEntryHandler builds the create-entry command handler.
func NewCreateEntryHandler(svc catalog.Service, opts ...HandlerOption[CreateEntryCommand]) *Handler[CreateEntryCommand] {
	opts = append(opts, WithOperation[CreateEntryCommand]("catalog.entry.create"))
	return NewHandler(func(ctx context.Context, msg CreateEntryCommand) error {
		_, err := svc.Create(ctx, msg.request())
		return err
	}, opts...)
}

// UpdateEntryCommand requests a partial update of a catalog entry. Localized
// payloads carry only the touched locale slots.
type UpdateEntryCommand struct {
	ID            uuid.UUID           `json:"id"`
	Slug          *string             `json:"slug,omitempty"`
	Title         map[string]string   `json:"title,omitempty"`
	Summary       map[string]string   `json:"summary,omitempty"`
	Body          map[string]string   `json:"body,omitempty"`
	Includes      map[string][]string `json:"includes,omitempty"`
	Excludes      map[string][]string `json:"excludes,omitempty"`
	Price         *float64            `json:"price,omitempty"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	CoverImage    *string             `json:"cover_image,omitempty"`
	Images        []string            `json:"images,omitempty"`
	IsActive      *bool               `json:"is_active,omitempty"`
	ComingSoon    *bool               `json:"coming_soon,omitempty"`
	CategoryID    *uuid.UUID          `json:"category_id,omitempty"`
	ClearCategory bool                `json:"clear_category,omitempty"`
	Extras        map[string]any      `json:"extras,omitempty"`
}

// Type implements command.Message.
func (UpdateEntryCommand) Type() string { return updateEntryMessageType }

// Validate ensures the command targets a record.
func (m UpdateEntryCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("portal.catalog.entry.update.id_required", "id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (m UpdateEntryCommand) request() catalog.UpdateEntryRequest {
	return catalog.UpdateEntryRequest{
		ID:            m.ID,
		Slug:          m.Slug,
		Title:         catalog.FieldInput(m.Title),
		Summary:       catalog.FieldInput(m.Summary),
		Body:          catalog.FieldInput(m.Body),
		Includes:      catalog.ListFieldInput(m.Includes),
		Excludes:      catalog.ListFieldInput(m.Excludes),
		Price:         m.Price,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		CoverImage:    m.CoverImage,
		Images:        m.Images,
		IsActive:      m.IsActive,
		ComingSoon:    m.ComingSoon,
		CategoryID:    m.CategoryID,
		ClearCategory: m.ClearCategory,
		Extras:        m.Extras,
	}
}

// NewUpdateEntryHandler builds the update-entry command handler.
func NewUpdateEntryHandler(svc catalog.Service, opts ...HandlerOption[UpdateEntryCommand]) *Handler[UpdateEntryCommand] {
	opts = append(opts, WithOperation[UpdateEntryCommand]("catalog.entry.update"))
	return NewHandler(func(ctx context.Context, msg UpdateEntryCommand) error {
		_, err := svc.Update(ctx, msg.request())
		return err
	}, opts...)
}

// DeleteEntryCommand requests destructive removal of an entry. Confirmation
// happens before dispatch; execution is immediate and final.
type DeleteEntryCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteEntryCommand) Type() string { return deleteEntryMessageType }

// Validate ensures the command targets a record.
func (m DeleteEntryCommand) Validate() error {
	if m.ID == uuid.Nil {
		return validation.Errors{
			"id": validation.NewError("portal.catalog.entry.delete.id_required", "id is required"),
		}
	}
	return nil
}

// NewDeleteEntryHandler builds the delete-entry command handler.
func NewDeleteEntryHandler(svc catalog.Service, opts ...HandlerOption[DeleteEntryCommand]) *Handler[DeleteEntryCommand] {
	opts = append(opts, WithOperation[DeleteEntryCommand]("catalog.entry.delete"))
	return NewHandler(func(ctx context.Context, msg DeleteEntryCommand) error {
		return svc.Delete(ctx, msg.ID)
	}, opts...)
}

// EntryRank pairs a record with its new zero-based rank.
type EntryRank struct {
	ID           uuid.UUID `json:"id"`
	DisplayOrder int       `json:"display_order"`
}

// ReorderEntriesCommand persists a full reorder of one kind's collection.
// Ranks must form a dense zero-based sequence covering every listed record.
type ReorderEntriesCommand struct {
	Kind  string      `json:"kind"`
	Ranks []EntryRank `json:"ranks"`
}

// Type implements command.Message.
func (ReorderEntriesCommand) Type() string { return reorderEntryMessageType }

// Validate checks the rank sequence is dense and free of duplicates.
func (m ReorderEntriesCommand) Validate() error {
	errs := validation.Errors{}
	if !catalog.NormalizeKind(m.Kind).Valid() {
		errs["kind"] = validation.NewError("portal.catalog.entry.reorder.kind_invalid", "kind is not a known collection")
	}
	if len(m.Ranks) == 0 {
		errs["ranks"] = validation.NewError("portal.catalog.entry.reorder.ranks_required", "ranks are required")
	} else {
		seenIDs := map[uuid.UUID]struct{}{}
		seenRanks := map[int]struct{}{}
		for _, rank := range m.Ranks {
			if rank.ID == uuid.Nil {
				errs["ranks"] = validation.NewError("portal.catalog.entry.reorder.id_required", "every rank needs a record id")
				break
			}
			if _, dup := seenIDs[rank.ID]; dup {
				errs["ranks"] = validation.NewError("portal.catalog.entry.reorder.id_duplicate", "record ids must be unique")
				break
			}
			seenIDs[rank.ID] = struct{}{}
			if rank.DisplayOrder < 0 || rank.DisplayOrder >= len(m.Ranks) {
				errs["ranks"] = validation.NewError("portal.catalog.entry.reorder.rank_out_of_range", "ranks must form a dense zero-based sequence")
				break
			}
			if _, dup := seenRanks[rank.DisplayOrder]; dup {
				errs["ranks"] = validation.NewError("portal.catalog.entry.reorder.rank_duplicate", "ranks must be unique")
				break
			}
			seenRanks[rank.DisplayOrder] = struct{}{}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NewReorderEntriesHandler builds the reorder command handler.
func NewReorderEntriesHandler(svc catalog.Service, opts ...HandlerOption[ReorderEntriesCommand]) *Handler[ReorderEntriesCommand] {
	opts = append(opts, WithOperation[ReorderEntriesCommand]("catalog.entry.reorder"))
	return NewHandler(func(ctx context.Context, msg ReorderEntriesCommand) error {
		orders := make([]catalog.EntryOrder, len(msg.Ranks))
		for i, rank := range msg.Ranks {
			orders[i] = catalog.EntryOrder{ID: rank.ID, DisplayOrder: rank.DisplayOrder}
		}
		return svc.SetDisplayOrders(ctx, orders)
	}, opts...)
}

// ToggleEntryFlagCommand flips one boolean flag on one entry.
type ToggleEntryFlagCommand struct {
	ID    uuid.UUID `json:"id"`
	Flag  string    `json:"flag"`
	Value bool      `json:"value"`
}

// Type implements command.Message.
func (ToggleEntryFlagCommand) Type() string { return toggleEntryMessageType }

// Validate checks the target and flag name.
func (m ToggleEntryFlagCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("portal.catalog.entry.toggle.id_required", "id is required")
	}
	if !catalog.Flag(m.Flag).Valid() {
		errs["flag"] = validation.NewError("portal.catalog.entry.toggle.flag_unknown", "flag is not toggleable")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NewToggleEntryFlagHandler builds the flag-toggle command handler.
func NewToggleEntryFlagHandler(svc catalog.Service, opts ...HandlerOption[ToggleEntryFlagCommand]) *Handler[ToggleEntryFlagCommand] {
	opts = append(opts, WithOperation[ToggleEntryFlagCommand]("catalog.entry.toggle"))
	return NewHandler(func(ctx context.Context, msg ToggleEntryFlagCommand) error {
		return svc.SetFlag(ctx, msg.ID, catalog.Flag(msg.Flag), msg.Value)
	}, opts...)
}
