package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/rihlatech/go-portal/internal/i18n"
)

// Category groups entries (e.g. trip categories) and carries a localized name.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID           uuid.UUID  `bun:",pk,type:uuid"                  json:"id"`
	Slug         string     `bun:"slug,notnull"                   json:"slug"`
	Name         i18n.Field `bun:"name,type:jsonb,notnull"        json:"name"`
	DisplayOrder int        `bun:"display_order,notnull,default:0" json:"display_order"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Entry is the canonical record for every orderable, localizable portal item:
// trips, programs, services, special packages, VIP services, immigration
// services, blogs, and destinations share this shape, discriminated by Kind.
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:e"`

	ID   uuid.UUID `bun:",pk,type:uuid"  json:"id"`
	Kind Kind      `bun:"kind,notnull"   json:"kind"`
	Slug string    `bun:"slug,notnull"   json:"slug"`

	Title    i18n.Field     `bun:"title,type:jsonb,notnull" json:"title"`
	Summary  i18n.Field     `bun:"summary,type:jsonb"       json:"summary"`
	Body     i18n.Field     `bun:"body,type:jsonb"          json:"body"`
	Includes i18n.ListField `bun:"includes,type:jsonb"      json:"includes"`
	Excludes i18n.ListField `bun:"excludes,type:jsonb"      json:"excludes"`

	Price      *float64   `bun:"price"                 json:"price,omitempty"`
	StartDate  *time.Time `bun:"start_date,nullzero"   json:"start_date,omitempty"`
	EndDate    *time.Time `bun:"end_date,nullzero"     json:"end_date,omitempty"`
	CoverImage string     `bun:"cover_image"           json:"cover_image,omitempty"`
	Images     []string   `bun:"images,type:jsonb"     json:"images,omitempty"`

	IsActive     bool `bun:"is_active,notnull,default:true"    json:"is_active"`
	ComingSoon   bool `bun:"coming_soon,notnull,default:false" json:"coming_soon"`
	DisplayOrder int  `bun:"display_order,notnull,default:0"   json:"display_order"`

	CategoryID *uuid.UUID     `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	Extras     map[string]any `bun:"extras,type:jsonb"     json:"extras,omitempty"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}

// identifier returns the composite lookup key used for slug indexes: slugs
// are unique per kind, not globally.
func (e *Entry) identifier() string {
	if e == nil {
		return ""
	}
	return string(e.Kind) + "/" + e.Slug
}
