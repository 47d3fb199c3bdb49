package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rihlatech/go-portal/cmd/internal/bootstrap"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("portal import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("portal-import", flag.ExitOnError)
	dbPath := fs.String("db", "portal.db", "Path to the sqlite database file (empty for a dry in-memory run)")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	defaultLocale := fs.String("default-locale", "en", "Default locale for documents without a locale suffix")
	locales := fs.String("locales", "", "Comma separated list of locales (defaults to config locales)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := bootstrap.BuildModule(bootstrap.Options{
		DBPath:        *dbPath,
		DefaultLocale: *defaultLocale,
		Locales:       bootstrap.SplitLocales(*locales),
		ContentDir:    *contentDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	report, err := module.Importer().ImportFS(context.Background(), os.DirFS(*contentDir))
	if err != nil {
		return fmt.Errorf("import %s: %w", *contentDir, err)
	}

	fmt.Fprintf(os.Stdout, "Created: %d\nUpdated: %d\nSkipped: %d\n", report.Created, report.Updated, report.Skipped)
	for _, importErr := range report.Errors {
		fmt.Fprintf(os.Stderr, "error: %v\n", importErr)
	}
	if len(report.Errors) > 0 {
		return fmt.Errorf("%d documents failed", len(report.Errors))
	}
	return nil
}
