// Package catalog exposes the public surface of the portal catalog domain:
// the service contract, record and view types, and request shapes host
// applications program against.
package catalog

import (
	internal "github.com/rihlatech/go-portal/internal/catalog"
)

// Service exposes catalog management use-cases.
type Service = internal.Service

// Entry is the stored record for every orderable kind.
type Entry = internal.Entry

// Category groups entries with a localized name.
type Category = internal.Category

// EntryView is the locale-resolved projection of an entry.
type EntryView = internal.EntryView

// CategoryView is the locale-resolved projection of a category.
type CategoryView = internal.CategoryView

// Kind discriminates the orderable entry collections.
type Kind = internal.Kind

// Flag names the boolean columns the admin can toggle inline.
type Flag = internal.Flag

const (
	KindTrip               = internal.KindTrip
	KindProgram            = internal.KindProgram
	KindService            = internal.KindService
	KindSpecialPackage     = internal.KindSpecialPackage
	KindVIPService         = internal.KindVIPService
	KindImmigrationService = internal.KindImmigrationService
	KindBlog               = internal.KindBlog
	KindDestination        = internal.KindDestination
)

const (
	FlagActive     = internal.FlagActive
	FlagComingSoon = internal.FlagComingSoon
)

type (
	CreateEntryRequest    = internal.CreateEntryRequest
	UpdateEntryRequest    = internal.UpdateEntryRequest
	EnsureCategoryRequest = internal.EnsureCategoryRequest
	EntryOrder            = internal.EntryOrder
	ListOptions           = internal.ListOptions
	FieldInput            = internal.FieldInput
	ListFieldInput        = internal.ListFieldInput
)

// Kinds returns every supported entry kind.
func Kinds() []Kind {
	return internal.Kinds()
}

// NormalizeKind maps free-form kind strings onto the supported set.
func NormalizeKind(value string) Kind {
	return internal.NormalizeKind(value)
}
