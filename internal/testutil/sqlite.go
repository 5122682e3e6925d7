package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murkotick/invoice-dashboard-service/internal/models/m_customer"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/config"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/database"
	"github.com/murkotick/invoice-dashboard-service/migrations"
)

// OpenSQLite returns a migrated sqlite database in a temp dir, closed on cleanup.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), config.StoreConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "invoices.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Apply(context.Background(), db, migrations.SQLite)
	require.NoError(t, err)
	return db
}

// InsertCustomer adds a customer row.
func InsertCustomer(t testing.TB, db *sql.DB, id, name string) {
	t.Helper()
	_, err := db.Exec(m_customer.InsertSQL, id, name, name+"@example.com", "/customers/"+id+".png")
	require.NoError(t, err)
}
