// Package store owns the SQLite persistence layer for aurum: schema
// bootstrap, default-account seeding, and the reads the forecast engine
// consumes.
package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aurumfin/aurum/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps a connection to one aurum store file. Lifetime is scoped
// to a single call site: open, use, close.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store file at path. The parent directory
// must already exist; creating it is the caller's job.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	// sql.Open is lazy. Ping forces file creation so permission and
	// corruption errors surface here instead of mid-query.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureReady applies the schema, then seeds the default account if the
// accounts table is empty. Safe to call any number of times: the schema
// statements are idempotent and the seed is a single conditional insert,
// so two processes bootstrapping the same file concurrently cannot both
// seed.
func (s *Store) EnsureReady() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaFailed, err)
	}

	_, err := s.db.Exec(`
		INSERT INTO accounts (name, type, balance, is_liquid, growth_rate_apr)
		SELECT ?, ?, ?, 1, 0.0
		WHERE NOT EXISTS (SELECT 1 FROM accounts)`,
		seedAccountName, seedAccountType, seedAccountBalance,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeedFailed, err)
	}
	return nil
}

// EnsureReady opens the store at path, bootstraps it, and closes it.
func EnsureReady(path string) error {
	s, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return s.EnsureReady()
}

// LiquidBalance returns the sum of balances across liquid accounts. An
// empty liquid set sums to zero, not an error.
func (s *Store) LiquidBalance() (decimal.Decimal, error) {
	var sum float64
	err := s.db.QueryRow(`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE is_liquid = 1`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing liquid balances: %w", ErrReadFailed, err)
	}
	// Balances rest as REAL; convert at the boundary so arithmetic past
	// this point is exact decimal.
	return decimal.NewFromFloat(sum), nil
}

// AccountCount returns the number of stored accounts.
func (s *Store) AccountCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting accounts: %w", ErrReadFailed, err)
	}
	return n, nil
}

// Accounts returns every stored account ordered by id.
func (s *Store) Accounts() ([]model.Account, error) {
	rows, err := s.db.Query(`
		SELECT id, name, type, balance, is_liquid, growth_rate_apr
		FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing accounts: %w", ErrReadFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var (
			a        model.Account
			balance  float64
			isLiquid int
			apr      sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &balance, &isLiquid, &apr); err != nil {
			return nil, fmt.Errorf("%w: scanning account: %w", ErrReadFailed, err)
		}
		a.Balance = decimal.NewFromFloat(balance)
		a.IsLiquid = isLiquid != 0
		if apr.Valid {
			a.GrowthRateAPR = decimal.NewFromFloat(apr.Float64)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing accounts: %w", ErrReadFailed, err)
	}
	return accounts, nil
}

// TableNames returns the user tables present in the store, sorted.
func (s *Store) TableNames() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing tables: %w", ErrReadFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scanning table name: %w", ErrReadFailed, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing tables: %w", ErrReadFailed, err)
	}
	return names, nil
}
