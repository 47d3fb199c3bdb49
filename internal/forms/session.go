package forms

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/i18n"
)

// ErrUnknownLocale signals a locale switch to a code outside the configured
// set.
var ErrUnknownLocale = errors.New("forms: unknown locale")

// Session models one admin edit screen over a record with multilingual
// fields. All bindings share a single active locale: switching it swaps the
// visible slot of every bound field at once. Slots are populated raw, with
// no display fallback, so editors see exactly which locales still lack a
// translation.
type Session struct {
	resolver i18n.Resolver
	messages *i18n.Catalog
	active   string
	texts    map[string]*TextBinding
	lists    map[string]*ListBinding
	order    []string
}

// SessionOption configures a session at construction time.
type SessionOption func(*Session)

// WithMessages wires the admin chrome message catalog so labels follow the
// active locale.
func WithMessages(messages *i18n.Catalog) SessionOption {
	return func(s *Session) {
		s.messages = messages
	}
}

// NewSession starts an edit session with the default locale active.
func NewSession(resolver i18n.Resolver, opts ...SessionOption) *Session {
	s := &Session{
		resolver: resolver,
		active:   resolver.DefaultLocale(),
		texts:    map[string]*TextBinding{},
		lists:    map[string]*ListBinding{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Label translates an admin chrome string for the active locale. Without a
// message catalog, or for an unknown ID, the ID itself is returned.
func (s *Session) Label(id string) string {
	if s.messages == nil {
		return id
	}
	return s.messages.Get(s.active, id, nil)
}

// ActiveLocale returns the locale currently shown by every binding.
func (s *Session) ActiveLocale() string {
	return s.active
}

// Locales returns the switchable locale codes, default first.
func (s *Session) Locales() []string {
	return s.resolver.Locales()
}

// SetActiveLocale switches every binding in the session to the given locale.
func (s *Session) SetActiveLocale(locale string) error {
	normalized := i18n.NormalizeLocale(locale)
	if !s.resolver.Supported(normalized) {
		return ErrUnknownLocale
	}
	s.active = normalized
	return nil
}

// BindText attaches a text field to the session, populating one raw slot per
// supported locale from the stored value.
func (s *Session) BindText(name string, stored i18n.Field, opts ...BindingOption) *TextBinding {
	binding := &TextBinding{
		session: s,
		name:    name,
		slots:   map[string]string{},
		dirty:   map[string]bool{},
	}
	for _, locale := range s.resolver.Locales() {
		if value, ok := stored.Get(locale); ok {
			binding.slots[locale] = value
		}
	}
	for _, opt := range opts {
		opt(&binding.settings)
	}
	s.texts[name] = binding
	s.order = append(s.order, name)
	return binding
}

// BindList attaches a line-sequence field to the session.
func (s *Session) BindList(name string, stored i18n.ListField, opts ...BindingOption) *ListBinding {
	binding := &ListBinding{
		session: s,
		name:    name,
		slots:   map[string][]string{},
		dirty:   map[string]bool{},
	}
	for _, locale := range s.resolver.Locales() {
		if lines, ok := stored.Get(locale); ok {
			binding.slots[locale] = append([]string(nil), lines...)
		}
	}
	for _, opt := range opts {
		opt(&binding.settings)
	}
	s.lists[name] = binding
	s.order = append(s.order, name)
	return binding
}

// Text returns a bound text field by name, or nil.
func (s *Session) Text(name string) *TextBinding {
	return s.texts[name]
}

// List returns a bound list field by name, or nil.
func (s *Session) List(name string) *ListBinding {
	return s.lists[name]
}

// TextInputs collects the touched slots of every text binding, keyed by
// field name. Untouched slots are omitted so the write path's merge leaves
// other locales' stored translations intact.
func (s *Session) TextInputs() map[string]catalog.FieldInput {
	out := map[string]catalog.FieldInput{}
	for name, binding := range s.texts {
		if input := binding.Input(); len(input) > 0 {
			out[name] = input
		}
	}
	return out
}

// ListInputs mirrors TextInputs for list bindings.
func (s *Session) ListInputs() map[string]catalog.ListFieldInput {
	out := map[string]catalog.ListFieldInput{}
	for name, binding := range s.lists {
		if input := binding.Input(); len(input) > 0 {
			out[name] = input
		}
	}
	return out
}

// Validate checks every binding's requiredness rules across all locales,
// not only the active one, so a save cannot silently drop a mandatory
// translation. The result is a validation.Errors keyed by "field.locale".
func (s *Session) Validate() error {
	failures := validation.Errors{}
	for _, name := range s.order {
		if binding, ok := s.texts[name]; ok {
			for _, locale := range binding.requiredLocales(s.resolver) {
				if err := validation.Validate(binding.Slot(locale), validation.Required); err != nil {
					failures[name+"."+locale] = err
				}
			}
		}
		if binding, ok := s.lists[name]; ok {
			for _, locale := range binding.requiredLocales(s.resolver) {
				if len(binding.Slot(locale)) == 0 {
					failures[name+"."+locale] = validation.ErrRequired
				}
			}
		}
	}
	if len(failures) > 0 {
		return failures
	}
	return nil
}
