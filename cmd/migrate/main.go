package main

import (
	"fmt"
	"os"
)

// Applies the embedded schema and demo data to the configured store.
//
// Usage (sqlite):
//
//	STORE_DRIVER=sqlite SQLITE_PATH=invoices.db AUTH_SECRET=dev go run ./cmd/migrate up
//	STORE_DRIVER=sqlite SQLITE_PATH=invoices.db AUTH_SECRET=dev go run ./cmd/migrate seed
//
// Usage (spanner emulator):
//
//	set SPANNER_EMULATOR_HOST=localhost:9010
//	set STORE_DRIVER=spanner
//	set SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate up
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
