package catalog

import "github.com/rihlatech/go-portal/internal/i18n"

// toView projects a stored record into its display shape for one locale.
// The projection is total: it never fails and never panics, whatever mix of
// bare strings, locale maps, and absent translations the record carries.
// Missing translations resolve through the fallback chain; a locale with no
// resolution anywhere yields an empty string or empty list.
func (s *service) toView(record *Entry, locale string) EntryView {
	normalized := i18n.NormalizeLocale(locale)
	if !s.resolver.Supported(normalized) {
		normalized = s.resolver.DefaultLocale()
	}

	view := EntryView{
		ID:           record.ID,
		Kind:         record.Kind,
		Slug:         record.Slug,
		Locale:       normalized,
		Title:        s.resolver.Text(record.Title, normalized),
		Summary:      s.resolver.Text(record.Summary, normalized),
		Body:         s.resolver.Text(record.Body, normalized),
		Includes:     s.resolver.List(record.Includes, normalized),
		Excludes:     s.resolver.List(record.Excludes, normalized),
		Price:        record.Price,
		StartDate:    record.StartDate,
		EndDate:      record.EndDate,
		CoverImage:   record.CoverImage,
		Images:       append([]string(nil), record.Images...),
		IsActive:     record.IsActive,
		ComingSoon:   record.ComingSoon,
		DisplayOrder: record.DisplayOrder,
		Extras:       cloneMap(record.Extras),
	}

	if record.Kind == KindBlog && s.markdown != nil && view.Body != "" {
		if html, err := s.markdown.Render([]byte(view.Body)); err == nil {
			view.BodyHTML = string(html)
		}
	}

	if record.Category != nil {
		view.Category = &CategoryView{
			ID:   record.Category.ID,
			Slug: record.Category.Slug,
			Name: s.resolver.Text(record.Category.Name, normalized),
		}
	}

	return view
}
