package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rihlatech/go-portal/internal/catalog"
	"github.com/rihlatech/go-portal/internal/logging"
	"github.com/rihlatech/go-portal/pkg/interfaces"
)

// ImportReport summarises one import run.
type ImportReport struct {
	Created int
	Updated int
	Skipped int
	Errors  []error
}

// Importer loads blog posts from markdown sources into the catalog. Files
// group by slug: every locale variant of a post contributes one locale's
// title, summary, and body to a single blog entry.
type Importer struct {
	svc    catalog.Service
	logger interfaces.Logger
}

// ImporterOption configures an importer.
type ImporterOption func(*Importer)

// ImporterWithLogger injects a structured logger.
func ImporterWithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter builds an importer writing through the catalog service.
func NewImporter(svc catalog.Service, opts ...ImporterOption) *Importer {
	imp := &Importer{
		svc:    svc,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportFS walks the filesystem for .md files and imports them as blog
// entries. Draft documents are skipped. Individual file failures are
// collected in the report, not fatal to the run.
func (i *Importer) ImportFS(ctx context.Context, fsys fs.FS) (ImportReport, error) {
	report := ImportReport{}
	defaultLocale := i.svc.Resolver().DefaultLocale()

	groups := map[string][]*Document{}
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			report.Errors = append(report.Errors, err)
			return nil
		}
		doc, err := ParseDocument(path, source, defaultLocale)
		if err != nil {
			report.Errors = append(report.Errors, err)
			return nil
		}
		groups[doc.Slug] = append(groups[doc.Slug], doc)
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("markdown import: %w", err)
	}

	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		if err := i.importGroup(ctx, slug, groups[slug], &report); err != nil {
			report.Errors = append(report.Errors, err)
		}
	}

	i.logger.Info("markdown.import.completed",
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"errors", len(report.Errors))
	return report, nil
}

func (i *Importer) importGroup(ctx context.Context, slug string, docs []*Document, report *ImportReport) error {
	titles := catalog.FieldInput{}
	summaries := catalog.FieldInput{}
	bodies := catalog.FieldInput{}
	coverImage := ""
	var tags []string
	draft := false

	for _, doc := range docs {
		if doc.FrontMatter.Draft {
			draft = true
			continue
		}
		if doc.FrontMatter.Title != "" {
			titles[doc.Locale] = doc.FrontMatter.Title
		}
		if doc.FrontMatter.Summary != "" {
			summaries[doc.Locale] = doc.FrontMatter.Summary
		}
		if body := strings.TrimSpace(string(doc.Body)); body != "" {
			bodies[doc.Locale] = body
		}
		if doc.FrontMatter.CoverImage != "" {
			coverImage = doc.FrontMatter.CoverImage
		}
		if len(doc.FrontMatter.Tags) > 0 {
			tags = doc.FrontMatter.Tags
		}
	}

	if len(titles) == 0 && len(bodies) == 0 {
		report.Skipped++
		return nil
	}

	extras := map[string]any{}
	if len(tags) > 0 {
		extras["tags"] = tags
	}

	existing, err := i.svc.GetBySlug(ctx, catalog.KindBlog, slug)
	switch {
	case err == nil:
		update := catalog.UpdateEntryRequest{
			ID:      existing.ID,
			Title:   titles,
			Summary: summaries,
			Body:    bodies,
		}
		if coverImage != "" {
			update.CoverImage = &coverImage
		}
		if len(extras) > 0 {
			update.Extras = extras
		}
		if _, err := i.svc.Update(ctx, update); err != nil {
			return fmt.Errorf("update %s: %w", slug, err)
		}
		report.Updated++
	case catalog.IsNotFound(err):
		create := catalog.CreateEntryRequest{
			Kind:       catalog.KindBlog,
			Slug:       slug,
			Title:      titles,
			Summary:    summaries,
			Body:       bodies,
			CoverImage: coverImage,
			IsActive:   !draft,
		}
		if len(extras) > 0 {
			create.Extras = extras
		}
		if _, err := i.svc.Create(ctx, create); err != nil {
			return fmt.Errorf("create %s: %w", slug, err)
		}
		report.Created++
	default:
		return fmt.Errorf("lookup %s: %w", slug, err)
	}
	return nil
}
