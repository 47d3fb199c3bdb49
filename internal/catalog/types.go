package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the orderable entry collections managed by the portal.
type Kind string

const (
	KindTrip               Kind = "trip"
	KindProgram            Kind = "program"
	KindService            Kind = "service"
	KindSpecialPackage     Kind = "special_package"
	KindVIPService         Kind = "vip_service"
	KindImmigrationService Kind = "immigration_service"
	KindBlog               Kind = "blog"
	KindDestination        Kind = "destination"
)

// Kinds lists every supported entry kind.
func Kinds() []Kind {
	return []Kind{
		KindTrip,
		KindProgram,
		KindService,
		KindSpecialPackage,
		KindVIPService,
		KindImmigrationService,
		KindBlog,
		KindDestination,
	}
}

// Valid reports whether the kind names a supported collection.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// NormalizeKind canonicalizes user-supplied kind values.
func NormalizeKind(value string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(value)))
}

// EntryView is the locale-resolved projection of an Entry consumed by page
// rendering and admin lists. Non-localized attributes pass through untouched.
type EntryView struct {
	ID   uuid.UUID `json:"id"`
	Kind Kind      `json:"kind"`
	Slug string    `json:"slug"`

	Locale   string   `json:"locale"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Body     string   `json:"body"`
	BodyHTML string   `json:"body_html,omitempty"`
	Includes []string `json:"includes"`
	Excludes []string `json:"excludes"`

	Price      *float64   `json:"price,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CoverImage string     `json:"cover_image,omitempty"`
	Images     []string   `json:"images,omitempty"`

	IsActive     bool `json:"is_active"`
	ComingSoon   bool `json:"coming_soon"`
	DisplayOrder int  `json:"display_order"`

	Category *CategoryView  `json:"category,omitempty"`
	Extras   map[string]any `json:"extras,omitempty"`
}

// CategoryView is the locale-resolved projection of a Category.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// FieldInput carries admin form slots for one logical localized field:
// one value per locale actually edited. Absent locales are left untouched
// by the write path so partial edits never erase other translations.
type FieldInput map[string]string

// ListFieldInput mirrors FieldInput for line-sequence fields.
type ListFieldInput map[string][]string

// ListOptions filters and scopes collection reads.
type ListOptions struct {
	// ActiveOnly restricts results to entries visible on the public site.
	ActiveOnly bool
	// CategoryID restricts results to one category when set.
	CategoryID *uuid.UUID
}
