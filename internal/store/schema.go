package store

import "github.com/aurumfin/aurum/internal/model"

// schemaSQL creates every table and index the store needs. Each statement
// is individually idempotent, so applying the batch to an already
// initialized store is a no-op.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT NOT NULL,
	type            TEXT NOT NULL,
	balance         REAL NOT NULL,
	is_liquid       INTEGER NOT NULL CHECK (is_liquid IN (0, 1)),
	growth_rate_apr REAL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id         INTEGER NOT NULL,
	amount             REAL NOT NULL,
	date               TEXT NOT NULL,
	payee              TEXT,
	category           TEXT,
	linked_transfer_id INTEGER,
	FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS scheduled_items (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id        INTEGER NOT NULL,
	amount            REAL NOT NULL,
	frequency         TEXT NOT NULL,
	next_date         TEXT NOT NULL,
	type              TEXT NOT NULL,
	target_account_id INTEGER,
	FOREIGN KEY (account_id) REFERENCES accounts(id),
	FOREIGN KEY (target_account_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS budgets (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	category      TEXT NOT NULL,
	monthly_limit REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);
CREATE INDEX IF NOT EXISTS idx_scheduled_items_account ON scheduled_items(account_id);
`

// Account seeded into a store whose accounts table is empty. The balance
// gives a fresh install a plausible liquid position to forecast from.
const (
	seedAccountName    = "Primary Checking"
	seedAccountType    = model.AccountTypeCurrent
	seedAccountBalance = 2500.0
)
