// Package migrations embeds the schema DDL for every supported store driver.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed postgres/*.sql sqlite/*.sql spanner/*.sql
var files embed.FS

const (
	Postgres = "postgres"
	SQLite   = "sqlite"
	Spanner  = "spanner"
)

// Statements returns the DDL statements for dialect in file order.
func Statements(dialect string) ([]string, error) {
	switch dialect {
	case Postgres, SQLite, Spanner:
	default:
		return nil, fmt.Errorf("migrations: unknown dialect %q", dialect)
	}

	names, err := fs.Glob(files, dialect+"/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("migrations: read %s: %w", name, err)
		}
		out = append(out, Split(string(b))...)
	}
	return out, nil
}

// Split breaks a DDL script into statements on ';'.
func Split(script string) []string {
	// Normalize line endings for Windows-authored files.
	script = strings.ReplaceAll(script, "\r\n", "\n")

	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// Apply runs the dialect's DDL against db. Statements are idempotent
// (IF NOT EXISTS) so Apply can run on every start.
func Apply(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	if dialect == Spanner {
		return 0, fmt.Errorf("migrations: spanner DDL must go through the database admin client")
	}
	stmts, err := Statements(dialect)
	if err != nil {
		return 0, err
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return i, fmt.Errorf("migrations: statement %d: %w", i+1, err)
		}
	}
	return len(stmts), nil
}
