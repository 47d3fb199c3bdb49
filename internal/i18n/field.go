package i18n

import (
	"encoding/json"
	"strings"
)

// Field holds one logical text attribute as a locale -> value mapping.
//
// Records persisted before localization was introduced store a bare JSON
// string instead of a map. Decoding keeps track of that shape so untouched
// records re-serialize byte-for-byte, while lookups treat a bare value as if
// every locale mapped to the same string.
type Field struct {
	values map[string]string
	plain  string
	bare   bool
}

// NewField builds a Field from explicit per-locale values. Locale codes are
// normalized (trimmed, lowercased); empty codes are dropped.
func NewField(values map[string]string) Field {
	if len(values) == 0 {
		return Field{}
	}
	out := make(map[string]string, len(values))
	for code, value := range values {
		normalized := NormalizeLocale(code)
		if normalized == "" {
			continue
		}
		out[normalized] = value
	}
	return Field{values: out}
}

// PlainField wraps a legacy non-localized value.
func PlainField(value string) Field {
	return Field{plain: value, bare: true}
}

// IsZero reports whether the field carries no value at all.
func (f Field) IsZero() bool {
	return !f.bare && len(f.values) == 0
}

// IsPlain reports whether the field is a legacy bare string.
func (f Field) IsPlain() bool {
	return f.bare
}

// Get returns the raw slot stored for a locale without any fallback. Admin
// editors rely on this to show exactly which locales still need translation.
// A bare legacy value answers for every locale.
func (f Field) Get(locale string) (string, bool) {
	if f.bare {
		return f.plain, true
	}
	value, ok := f.values[NormalizeLocale(locale)]
	return value, ok
}

// Set returns a copy of the field with the given locale slot replaced.
// Setting a slot on a bare legacy field promotes it to a locale map holding
// only the new slot; callers that need the legacy value preserved should
// expand the field first (see Merge).
func (f Field) Set(locale string, value string) Field {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return f
	}
	out := make(map[string]string, len(f.values)+1)
	for code, existing := range f.values {
		out[code] = existing
	}
	out[normalized] = value
	return Field{values: out}
}

// Merge applies per-locale slots on top of the stored field, preserving any
// locale the input does not mention. A bare legacy value is expanded across
// the supplied supported locales before the slots apply, so a partial edit
// never erases the legacy text for untouched languages.
func (f Field) Merge(slots map[string]string, locales []string) Field {
	base := make(map[string]string, len(f.values)+len(slots))
	if f.bare {
		for _, code := range locales {
			normalized := NormalizeLocale(code)
			if normalized == "" {
				continue
			}
			base[normalized] = f.plain
		}
	} else {
		for code, value := range f.values {
			base[code] = value
		}
	}
	for code, value := range slots {
		normalized := NormalizeLocale(code)
		if normalized == "" {
			continue
		}
		base[normalized] = value
	}
	return Field{values: base}
}

// Values returns a defensive copy of the locale map. Bare legacy fields
// return nil; callers should check IsPlain first.
func (f Field) Values() map[string]string {
	if len(f.values) == 0 {
		return nil
	}
	out := make(map[string]string, len(f.values))
	for code, value := range f.values {
		out[code] = value
	}
	return out
}

// MarshalJSON re-emits the stored shape: bare strings stay bare strings so
// unedited legacy records round-trip unchanged.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.bare {
		return json.Marshal(f.plain)
	}
	if f.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f.values)
}

// UnmarshalJSON accepts either a locale map or a legacy bare string. Null
// decodes to the zero field.
func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = Field{}
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*f = PlainField(plain)
		return nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*f = NewField(values)
	return nil
}

// NormalizeLocale canonicalizes a locale code for map lookups.
func NormalizeLocale(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
