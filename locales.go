package portal

import (
	"embed"
	"io/fs"
	"path"

	"github.com/rihlatech/go-portal/internal/i18n"
)

//go:embed data/i18n/*.yaml
var messagesFS embed.FS

// GetMessagesFS returns the embedded admin message files for this package
func GetMessagesFS() embed.FS {
	return messagesFS
}

// defaultMessageCatalog loads the embedded admin chrome strings for the
// configured locales. Locales without a message file fall back to the
// default locale at lookup time.
func defaultMessageCatalog(cfg Config) (*i18n.Catalog, error) {
	catalog := i18n.NewCatalog(cfg.DefaultLocale)

	entries, err := fs.Glob(messagesFS, "data/i18n/*.yaml")
	if err != nil {
		return nil, err
	}

	supported := map[string]bool{}
	for _, locale := range cfg.Locales {
		supported[i18n.NormalizeLocale(locale)] = true
	}

	for _, file := range entries {
		locale := i18n.NormalizeLocale(trimExt(path.Base(file)))
		if !supported[locale] {
			continue
		}
		if err := catalog.LoadMessagesFS(messagesFS, file); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(path.Ext(name))]
}
