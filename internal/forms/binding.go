package forms

import (
	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/i18n"
)

// bindingSettings carries per-field validation configuration.
type bindingSettings struct {
	requiredDefault bool
	requiredAll     bool
	requiredLocales []string
}

// BindingOption configures a field binding.
type BindingOption func(*bindingSettings)

// RequiredDefaultLocale marks the field mandatory in the default locale only.
// Other locales stay optional, matching the usual translation workflow where
// secondary languages trail behind.
func RequiredDefaultLocale() BindingOption {
	return func(s *bindingSettings) {
		s.requiredDefault = true
	}
}

// RequiredAllLocales marks the field mandatory in every supported locale.
func RequiredAllLocales() BindingOption {
	return func(s *bindingSettings) {
		s.requiredAll = true
	}
}

// RequiredLocales marks the field mandatory in the listed locales.
func RequiredLocales(locales ...string) BindingOption {
	return func(s *bindingSettings) {
		for _, code := range locales {
			s.requiredLocales = append(s.requiredLocales, i18n.NormalizeLocale(code))
		}
	}
}

func (s bindingSettings) resolve(resolver i18n.Resolver) []string {
	if s.requiredAll {
		return resolver.Locales()
	}
	out := append([]string(nil), s.requiredLocales...)
	if s.requiredDefault {
		out = append(out, resolver.DefaultLocale())
	}
	return out
}

// TextBinding is one multilingual text field in an edit session. It holds one
// raw slot per locale; the session's active locale decides which slot Value
// and SetValue address.
type TextBinding struct {
	session  *Session
	name     string
	slots    map[string]string
	dirty    map[string]bool
	settings bindingSettings
}

// Name returns the field name.
func (b *TextBinding) Name() string {
	return b.name
}

// Value returns the raw slot for the session's active locale. A locale with
// no stored translation yields an empty string, never a fallback value.
func (b *TextBinding) Value() string {
	return b.slots[b.session.ActiveLocale()]
}

// SetValue writes the slot for the session's active locale and marks it
// touched.
func (b *TextBinding) SetValue(value string) {
	locale := b.session.ActiveLocale()
	b.slots[locale] = value
	b.dirty[locale] = true
}

// Slot returns the raw slot for an explicit locale.
func (b *TextBinding) Slot(locale string) string {
	return b.slots[i18n.NormalizeLocale(locale)]
}

// Translated reports whether the locale holds a non-empty slot. Admin
// screens use this to badge missing translations.
func (b *TextBinding) Translated(locale string) bool {
	return b.slots[i18n.NormalizeLocale(locale)] != ""
}

// Input returns only the touched slots. Locales the editor never visited are
// absent so the service's merge keeps their stored values byte-for-byte.
func (b *TextBinding) Input() catalog.FieldInput {
	if len(b.dirty) == 0 {
		return nil
	}
	out := catalog.FieldInput{}
	for locale := range b.dirty {
		out[locale] = b.slots[locale]
	}
	return out
}

func (b *TextBinding) requiredLocales(resolver i18n.Resolver) []string {
	return b.settings.resolve(resolver)
}

// ListBinding is one multilingual line-sequence field in an edit session.
type ListBinding struct {
	session  *Session
	name     string
	slots    map[string][]string
	dirty    map[string]bool
	settings bindingSettings
}

// Name returns the field name.
func (b *ListBinding) Name() string {
	return b.name
}

// Value returns the raw lines for the session's active locale.
func (b *ListBinding) Value() []string {
	return append([]string(nil), b.slots[b.session.ActiveLocale()]...)
}

// SetValue writes the lines for the session's active locale and marks it
// touched.
func (b *ListBinding) SetValue(lines []string) {
	locale := b.session.ActiveLocale()
	b.slots[locale] = append([]string(nil), lines...)
	b.dirty[locale] = true
}

// Slot returns the raw lines for an explicit locale.
func (b *ListBinding) Slot(locale string) []string {
	return append([]string(nil), b.slots[i18n.NormalizeLocale(locale)]...)
}

// Input returns only the touched slots.
func (b *ListBinding) Input() catalog.ListFieldInput {
	if len(b.dirty) == 0 {
		return nil
	}
	out := catalog.ListFieldInput{}
	for locale := range b.dirty {
		out[locale] = append([]string(nil), b.slots[locale]...)
	}
	return out
}

func (b *ListBinding) requiredLocales(resolver i18n.Resolver) []string {
	return b.settings.resolve(resolver)
}
