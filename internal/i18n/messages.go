package i18n

import (
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog serves admin-facing chrome strings (labels, confirmations,
// validation messages). Content localization is data-driven through Field
// values; the catalog only covers the portal UI itself.
type Catalog struct {
	bundle        *goi18n.Bundle
	defaultLocale string
}

// Message is a translatable catalog entry.
type Message struct {
	ID    string
	Other string
}

// NewCatalog builds a message catalog that falls back to the default locale
// when a translation is missing.
func NewCatalog(defaultLocale string) *Catalog {
	tag := language.Make(NormalizeLocale(defaultLocale))
	if tag == language.Und {
		tag = language.English
	}
	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)
	return &Catalog{
		bundle:        bundle,
		defaultLocale: NormalizeLocale(defaultLocale),
	}
}

// LoadMessagesFS registers message files from the filesystem. The locale is
// taken from the file name, e.g. ar.yaml.
func (c *Catalog) LoadMessagesFS(fsys fs.FS, paths ...string) error {
	for _, path := range paths {
		if _, err := c.bundle.LoadMessageFileFS(fsys, path); err != nil {
			return err
		}
	}
	return nil
}

// Add registers messages for a locale. Unknown locale codes are mapped on a
// best-effort basis; go-i18n resolves the closest matching tag at lookup.
func (c *Catalog) Add(locale string, messages ...Message) error {
	tag := language.Make(NormalizeLocale(locale))
	converted := make([]*goi18n.Message, 0, len(messages))
	for _, msg := range messages {
		converted = append(converted, &goi18n.Message{
			ID:    msg.ID,
			Other: msg.Other,
		})
	}
	return c.bundle.AddMessages(tag, converted...)
}

// Get resolves a message for the requested locale. Missing translations fall
// back through go-i18n's matcher to the default locale; unknown IDs return
// the ID itself so callers always render something.
func (c *Catalog) Get(locale string, id string, data map[string]any) string {
	localizer := goi18n.NewLocalizer(c.bundle, NormalizeLocale(locale), c.defaultLocale)
	translated, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil || translated == "" {
		return id
	}
	return translated
}
