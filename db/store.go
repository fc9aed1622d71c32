// Package db connects to the declaration-index database: local SQLite by
// default, or a remote Turso/libsql database when CPPDECL_CACHE_DSN names
// a libsql:// URL (internal/config reads that variable).
package db

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oxhq/cppdecl/internal/dbmodel"
)

// Connect opens the declaration-index database named by dsn and migrates
// its schema.
func Connect(dsn string) (*gorm.DB, error) {
	if !isRemote(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating index database directory: %w", err)
			}
		}
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isRemote(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("CPPDECL_LIBSQL_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("creating libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = gormsqlite.New(gormsqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		// Pure-Go, cgo-free driver for the local, common case.
		dialector = sqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	if err := gdb.AutoMigrate(&dbmodel.DeclarationRecord{}, &dbmodel.IndexRun{}); err != nil {
		return nil, fmt.Errorf("migrating index database: %w", err)
	}
	return gdb, nil
}

func isRemote(dsn string) bool {
	return strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "wss://")
}
