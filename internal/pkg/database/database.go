// Package database opens the database/sql handle for the SQL store drivers.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/murkotick/invoice-dashboard-service/internal/pkg/config"
)

const (
	pgxDriver    = "pgx"
	sqliteDriver = "sqlite"
)

var ErrInsecureConnection = errors.New("database: connection must use TLS")

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Open connects to the configured SQL driver and pings it.
func Open(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	var (
		driver string
		dsn    string
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		d, err := PostgresDSN(cfg.PostgresURL, cfg.AllowInsecure)
		if err != nil {
			return nil, err
		}
		driver, dsn = pgxDriver, d
	case config.DriverSQLite:
		driver, dsn = sqliteDriver, cfg.SQLitePath
	default:
		return nil, fmt.Errorf("database: driver %q is not a database/sql driver", cfg.Driver)
	}

	openMu.Lock()
	db, err := sqlOpen(driver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if driver == sqliteDriver {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// PostgresDSN enforces TLS on a Postgres URL. A URL without sslmode gets
// sslmode=require; disable/allow/prefer are rejected unless allowInsecure.
func PostgresDSN(raw string, allowInsecure bool) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("database: POSTGRES_URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("database: parse POSTGRES_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("database: unsupported scheme %q", u.Scheme)
	}

	q := u.Query()
	switch strings.ToLower(q.Get("sslmode")) {
	case "":
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
	case "disable", "allow", "prefer":
		if !allowInsecure {
			return "", fmt.Errorf("%w: sslmode=%s", ErrInsecureConnection, q.Get("sslmode"))
		}
	}
	return u.String(), nil
}
