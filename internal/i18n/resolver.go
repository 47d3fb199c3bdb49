package i18n

// fallbackLocale is the final stop of the resolution chain before bottoming
// out at an empty value.
const fallbackLocale = "en"

// Resolver resolves display values from localized fields using a fixed,
// total fallback order: requested locale, configured default locale, "en",
// empty value. Resolution never fails; partially translated records are
// legal and degrade per missing locale.
type Resolver struct {
	defaultLocale string
	locales       []string
}

// NewResolver builds a resolver for the supported locale set. The default
// locale is always considered supported.
func NewResolver(defaultLocale string, locales ...string) Resolver {
	normalized := NormalizeLocale(defaultLocale)
	if normalized == "" {
		normalized = fallbackLocale
	}
	supported := make([]string, 0, len(locales)+1)
	seen := map[string]struct{}{}
	for _, code := range append([]string{normalized}, locales...) {
		c := NormalizeLocale(code)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		supported = append(supported, c)
	}
	return Resolver{defaultLocale: normalized, locales: supported}
}

// DefaultLocale returns the configured default locale code.
func (r Resolver) DefaultLocale() string {
	if r.defaultLocale == "" {
		return fallbackLocale
	}
	return r.defaultLocale
}

// Locales returns the supported locale codes, default first.
func (r Resolver) Locales() []string {
	if len(r.locales) == 0 {
		return []string{r.DefaultLocale()}
	}
	out := make([]string, len(r.locales))
	copy(out, r.locales)
	return out
}

// Supported reports whether the locale code is part of the configured set.
func (r Resolver) Supported(locale string) bool {
	normalized := NormalizeLocale(locale)
	for _, code := range r.Locales() {
		if code == normalized {
			return true
		}
	}
	return false
}

// Text resolves a display string for the requested locale. Missing slots
// fall through the chain and bottom out at the empty string.
func (r Resolver) Text(f Field, locale string) string {
	for _, code := range r.chain(locale) {
		if value, ok := f.Get(code); ok {
			return value
		}
	}
	return ""
}

// List resolves an ordered sequence for the requested locale. Missing slots
// bottom out at an empty sequence, never an empty string.
func (r Resolver) List(f ListField, locale string) []string {
	for _, code := range r.chain(locale) {
		if lines, ok := f.Get(code); ok {
			return lines
		}
	}
	return []string{}
}

func (r Resolver) chain(locale string) []string {
	chain := make([]string, 0, 3)
	push := func(code string) {
		normalized := NormalizeLocale(code)
		if normalized == "" {
			return
		}
		for _, existing := range chain {
			if existing == normalized {
				return
			}
		}
		chain = append(chain, normalized)
	}
	push(locale)
	push(r.DefaultLocale())
	push(fallbackLocale)
	return chain
}
