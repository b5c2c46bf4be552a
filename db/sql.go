package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ParseURL maps DATABASE_URL onto a database/sql driver name and DSN.
// postgres:// and postgresql:// go to lib/pq, sqlite://, file: and :memory:
// go to modernc sqlite.
func ParseURL(databaseURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "file:"), databaseURL == ":memory:":
		return DriverSQLite, databaseURL, nil
	case databaseURL == "":
		return "", "", fmt.Errorf("DATABASE_URL is not set")
	}
	return "", "", fmt.Errorf("unsupported database url scheme: %q", databaseURL)
}

func Connect(databaseURL string) (*sql.DB, string, error) {
	driver, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, "", err
	}

	conn, err := Open(driver, dsn)
	if err != nil {
		return nil, "", err
	}

	return conn, driver, nil
}

func Open(driver, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// every pooled connection to :memory: would be its own database
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
