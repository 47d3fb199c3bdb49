// Package bootstrap wires portal modules for the command line tools. It
// opens the sqlite database, applies the embedded schema and hands back a
// ready module.
package bootstrap

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	portal "github.com/rihlatech/go-portal"
	"github.com/rihlatech/go-portal/internal/di"
)

// Options configure a module boot.
type Options struct {
	// DBPath is the sqlite database file. Empty means in-memory
	// repositories with no persistence.
	DBPath        string
	DefaultLocale string
	Locales       []string
	ContentDir    string
}

// BuildModule assembles a portal module from the options.
func BuildModule(opts Options) (*portal.Module, error) {
	cfg := portal.DefaultConfig()
	if opts.DefaultLocale != "" {
		cfg.DefaultLocale = opts.DefaultLocale
	}
	if len(opts.Locales) > 0 {
		cfg.Locales = opts.Locales
	}
	if opts.ContentDir != "" {
		cfg.Markdown.ContentDir = opts.ContentDir
	}

	if opts.DBPath == "" {
		return portal.New(cfg)
	}

	sqlDB, err := sql.Open("sqlite3", opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applySchema(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	return portal.New(cfg, di.WithBunDB(bunDB))
}

// applySchema runs the embedded sqlite migrations in order. The DDL is
// IF NOT EXISTS so reruns against an existing database are safe.
func applySchema(db *sql.DB) error {
	fsys := portal.GetMigrationsFS()
	names, err := fs.Glob(fsys, "data/sql/migrations/sqlite/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		ddl, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(ddl)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

// SplitLocales parses a comma separated locale list, dropping blanks.
func SplitLocales(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
