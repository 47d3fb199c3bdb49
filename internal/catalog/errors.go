package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrKindInvalid          = errors.New("catalog: unknown entry kind")
	ErrSlugRequired         = errors.New("catalog: slug is required")
	ErrSlugInvalid          = errors.New("catalog: slug contains invalid characters")
	ErrSlugExists           = errors.New("catalog: slug already exists for this kind")
	ErrTitleRequired        = errors.New("catalog: title is required in the default locale")
	ErrEntryIDRequired      = errors.New("catalog: entry id required")
	ErrUnknownLocale        = errors.New("catalog: locale is not part of the supported set")
	ErrCategoryInvalid      = errors.New("catalog: category does not exist")
	ErrFlagUnknown          = errors.New("catalog: unknown boolean flag")
	ErrDisplayOrderMismatch = errors.New("catalog: reorder must cover every entry of the collection")
	ErrExtrasInvalid        = errors.New("catalog: extras failed schema validation")
)

// NotFoundError represents missing records from repository lookups. Callers
// distinguish it from "record found but empty" so page layers can render a
// real not-found state instead of a blank record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a repository NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
