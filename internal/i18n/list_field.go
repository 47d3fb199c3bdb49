package i18n

import (
	"encoding/json"
	"strings"
)

// ListField holds an ordered sequence of text lines per locale, used for
// "includes/excludes" style attributes. Legacy records may store a bare JSON
// array that answers for every locale, mirroring Field's bare-string shape.
type ListField struct {
	values map[string][]string
	plain  []string
	bare   bool
}

// NewListField builds a ListField from explicit per-locale sequences.
func NewListField(values map[string][]string) ListField {
	if len(values) == 0 {
		return ListField{}
	}
	out := make(map[string][]string, len(values))
	for code, lines := range values {
		normalized := NormalizeLocale(code)
		if normalized == "" {
			continue
		}
		out[normalized] = cloneLines(lines)
	}
	return ListField{values: out}
}

// PlainListField wraps a legacy non-localized sequence.
func PlainListField(lines []string) ListField {
	return ListField{plain: cloneLines(lines), bare: true}
}

// IsZero reports whether the field carries no value at all.
func (f ListField) IsZero() bool {
	return !f.bare && len(f.values) == 0
}

// IsPlain reports whether the field is a legacy bare sequence.
func (f ListField) IsPlain() bool {
	return f.bare
}

// Get returns the raw slot stored for a locale without any fallback.
func (f ListField) Get(locale string) ([]string, bool) {
	if f.bare {
		return cloneLines(f.plain), true
	}
	lines, ok := f.values[NormalizeLocale(locale)]
	if !ok {
		return nil, false
	}
	return cloneLines(lines), true
}

// Set returns a copy of the field with the given locale slot replaced.
func (f ListField) Set(locale string, lines []string) ListField {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return f
	}
	out := make(map[string][]string, len(f.values)+1)
	for code, existing := range f.values {
		out[code] = cloneLines(existing)
	}
	out[normalized] = cloneLines(lines)
	return ListField{values: out}
}

// Merge applies per-locale slots on top of the stored field, expanding a
// bare legacy sequence across the supported locales first so partial edits
// preserve untouched languages.
func (f ListField) Merge(slots map[string][]string, locales []string) ListField {
	base := make(map[string][]string, len(f.values)+len(slots))
	if f.bare {
		for _, code := range locales {
			normalized := NormalizeLocale(code)
			if normalized == "" {
				continue
			}
			base[normalized] = cloneLines(f.plain)
		}
	} else {
		for code, lines := range f.values {
			base[code] = cloneLines(lines)
		}
	}
	for code, lines := range slots {
		normalized := NormalizeLocale(code)
		if normalized == "" {
			continue
		}
		base[normalized] = cloneLines(lines)
	}
	return ListField{values: base}
}

// Values returns a defensive copy of the locale map.
func (f ListField) Values() map[string][]string {
	if len(f.values) == 0 {
		return nil
	}
	out := make(map[string][]string, len(f.values))
	for code, lines := range f.values {
		out[code] = cloneLines(lines)
	}
	return out
}

// MarshalJSON re-emits the stored shape so unedited legacy records
// round-trip unchanged.
func (f ListField) MarshalJSON() ([]byte, error) {
	if f.bare {
		return json.Marshal(f.plain)
	}
	if f.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f.values)
}

// UnmarshalJSON accepts either a locale map or a legacy bare array.
func (f *ListField) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ListField{}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var plain []string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*f = PlainListField(plain)
		return nil
	}

	var values map[string][]string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*f = NewListField(values)
	return nil
}

func cloneLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
