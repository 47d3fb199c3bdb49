package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter carries the metadata block of a blog source file.
type FrontMatter struct {
	Title      string         `yaml:"title"`
	Slug       string         `yaml:"slug"`
	Summary    string         `yaml:"summary"`
	CoverImage string         `yaml:"cover_image"`
	Tags       []string       `yaml:"tags"`
	Author     string         `yaml:"author"`
	Date       time.Time      `yaml:"date"`
	Draft      bool           `yaml:"draft"`
	Custom     map[string]any `yaml:",inline"`
}

// Document is one parsed blog source file: metadata plus the markdown body
// for a single locale.
type Document struct {
	Path        string
	Slug        string
	Locale      string
	FrontMatter FrontMatter
	Body        []byte
}

// ParseDocument extracts frontmatter and body from the file source. The slug
// and locale come from the frontmatter when present, otherwise from the file
// name using the <slug>.<locale>.md convention; a bare <slug>.md maps to the
// supplied default locale.
func ParseDocument(path string, source []byte, defaultLocale string) (*Document, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	slug, locale := splitFileName(path, defaultLocale)
	if meta.Slug != "" {
		slug = meta.Slug
	}
	if slug == "" {
		return nil, fmt.Errorf("document %s: no slug in frontmatter or file name", path)
	}

	return &Document{
		Path:        path,
		Slug:        slug,
		Locale:      locale,
		FrontMatter: meta,
		Body:        body,
	}, nil
}

// splitFileName derives (slug, locale) from names like "my-post.ar.md" and
// "my-post.md".
func splitFileName(path string, defaultLocale string) (string, string) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if idx := strings.LastIndex(base, "."); idx > 0 {
		candidate := base[idx+1:]
		if looksLikeLocale(candidate) {
			return base[:idx], strings.ToLower(candidate)
		}
	}
	return base, defaultLocale
}

func looksLikeLocale(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
