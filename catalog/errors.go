package catalog

import (
	internal "github.com/rihlatech/go-portal/internal/catalog"
)

var (
	ErrKindInvalid          = internal.ErrKindInvalid
	ErrSlugRequired         = internal.ErrSlugRequired
	ErrSlugInvalid          = internal.ErrSlugInvalid
	ErrSlugExists           = internal.ErrSlugExists
	ErrTitleRequired        = internal.ErrTitleRequired
	ErrEntryIDRequired      = internal.ErrEntryIDRequired
	ErrUnknownLocale        = internal.ErrUnknownLocale
	ErrCategoryInvalid      = internal.ErrCategoryInvalid
	ErrFlagUnknown          = internal.ErrFlagUnknown
	ErrDisplayOrderMismatch = internal.ErrDisplayOrderMismatch
	ErrExtrasInvalid        = internal.ErrExtrasInvalid
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError = internal.NotFoundError

// IsNotFound reports whether err wraps a repository NotFoundError.
func IsNotFound(err error) bool {
	return internal.IsNotFound(err)
}
