package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Supported SQL drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DefaultTable is the table used by SQLStore when none is configured.
const DefaultTable = "todo_kv"

// dialect holds the statements for one SQL driver.
type dialect struct {
	create string
	get    string
	set    string
}

// newDialect returns the statements for driver against table.
func newDialect(driver, table string) (dialect, error) {
	switch driver {
	case DriverMySQL:
		t := "`" + strings.ReplaceAll(table, "`", "``") + "`"
		return dialect{
			create: "CREATE TABLE IF NOT EXISTS " + t + " (k VARCHAR(191) PRIMARY KEY, v LONGTEXT NOT NULL)",
			get:    "SELECT v FROM " + t + " WHERE k = ?",
			set:    "INSERT INTO " + t + " (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)",
		}, nil
	case DriverPostgres:
		t := pq.QuoteIdentifier(table)
		return dialect{
			create: "CREATE TABLE IF NOT EXISTS " + t + " (k TEXT PRIMARY KEY, v TEXT NOT NULL)",
			get:    "SELECT v FROM " + t + " WHERE k = $1",
			set:    "INSERT INTO " + t + " (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v",
		}, nil
	}
	return dialect{}, fmt.Errorf("unsupported SQL driver %q (want %s or %s)", driver, DriverMySQL, DriverPostgres)
}

// normalizeDSN validates dsn for driver and returns the form sql.Open expects.
// MySQL DSNs are parsed and re-rendered; postgres:// URLs are converted to
// key=value form.
func normalizeDSN(driver, dsn string) (string, error) {
	if strings.TrimSpace(dsn) == "" {
		return "", fmt.Errorf("%s backend requires a dsn", driver)
	}
	switch driver {
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return cfg.FormatDSN(), nil
	case DriverPostgres:
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			conv, err := pq.ParseURL(dsn)
			if err != nil {
				return "", fmt.Errorf("invalid postgres url: %w", err)
			}
			return conv, nil
		}
		return dsn, nil
	}
	return "", fmt.Errorf("unsupported SQL driver %q", driver)
}

// SQLStore keeps values in a two-column SQL table.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQL connects to the database, verifies the connection and creates the
// key-value table if it does not exist.
func OpenSQL(ctx context.Context, driver, dsn, table string) (*SQLStore, error) {
	if table == "" {
		table = DefaultTable
	}
	d, err := newDialect(driver, table)
	if err != nil {
		return nil, err
	}
	conn, err := normalizeDSN(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	s := &SQLStore{db: db, dialect: d}
	if _, err := db.ExecContext(ctx, d.create); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return s, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.set, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
