package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// tempStore opens a store on a fresh temp path and closes it with the test.
func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aurum.sqlite3")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestEnsureReady_CreatesSchema(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tables, err := s.TableNames()
	if err != nil {
		t.Fatalf("listing tables: %v", err)
	}
	want := []string{"accounts", "budgets", "scheduled_items", "transactions"}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("TableNames = %v, want %v", tables, want)
	}
}

func TestEnsureReady_SeedsDefaultAccount(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accounts, err := s.Accounts()
	if err != nil {
		t.Fatalf("listing accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("len(accounts) = %d, want 1", len(accounts))
	}

	a := accounts[0]
	if a.Name != "Primary Checking" {
		t.Errorf("Name = %q, want Primary Checking", a.Name)
	}
	if a.Type != "current" {
		t.Errorf("Type = %q, want current", a.Type)
	}
	if !a.Balance.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Balance = %s, want 2500", a.Balance)
	}
	if !a.IsLiquid {
		t.Error("IsLiquid = false, want true")
	}
	if !a.GrowthRateAPR.IsZero() {
		t.Errorf("GrowthRateAPR = %s, want 0", a.GrowthRateAPR)
	}
}

func TestEnsureReady_Idempotent(t *testing.T) {
	s, path := tempStore(t)
	for i := 0; i < 3; i++ {
		if err := s.EnsureReady(); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	// A separate connection bootstrapping the same file changes nothing.
	if err := EnsureReady(path); err != nil {
		t.Fatalf("package-level bootstrap: %v", err)
	}

	n, err := s.AccountCount()
	if err != nil {
		t.Fatalf("counting accounts: %v", err)
	}
	if n != 1 {
		t.Errorf("AccountCount = %d, want 1 (seed must not repeat)", n)
	}
}

func TestEnsureReady_SkipsSeedWhenPopulated(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.db.Exec(`INSERT INTO accounts (name, type, balance, is_liquid) VALUES ('Brokerage', 'investment', 12000.0, 0)`)
	if err != nil {
		t.Fatalf("inserting fixture account: %v", err)
	}

	if err := s.EnsureReady(); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	n, err := s.AccountCount()
	if err != nil {
		t.Fatalf("counting accounts: %v", err)
	}
	if n != 2 {
		t.Errorf("AccountCount = %d, want 2 (no extra seed)", n)
	}
}

func TestEnsureReady_ConcurrentSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurum.sqlite3")

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = EnsureReady(path)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer s.Close()
	n, err := s.AccountCount()
	if err != nil {
		t.Fatalf("counting accounts: %v", err)
	}
	if n != 1 {
		t.Errorf("AccountCount = %d, want 1 after concurrent bootstrap", n)
	}
}

func TestLiquidBalance_SumsOnlyLiquidAccounts(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.db.Exec(`
		INSERT INTO accounts (name, type, balance, is_liquid) VALUES
		('Pension', 'retirement', 99999.99, 0),
		('Overdraft', 'current', -120.50, 1)`)
	if err != nil {
		t.Fatalf("inserting fixture accounts: %v", err)
	}

	got, err := s.LiquidBalance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2500 seed + (-120.50); the non-liquid pension is excluded.
	want := decimal.RequireFromString("2379.5")
	if !got.Equal(want) {
		t.Errorf("LiquidBalance = %s, want %s", got, want)
	}
}

func TestLiquidBalance_NoLiquidAccountsIsZero(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE accounts SET is_liquid = 0`); err != nil {
		t.Fatalf("demoting accounts: %v", err)
	}

	got, err := s.LiquidBalance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("LiquidBalance = %s, want 0", got)
	}
}

func TestLiquidBalance_EmptyTableIsZero(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.db.Exec(`DELETE FROM accounts`); err != nil {
		t.Fatalf("clearing accounts: %v", err)
	}

	got, err := s.LiquidBalance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("LiquidBalance = %s, want 0 for empty table", got)
	}
}

func TestOpen_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "aurum.sqlite3")
	_, err := Open(path)
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if !errors.Is(err, ErrOpenFailed) {
		t.Errorf("error = %v, want ErrOpenFailed", err)
	}
}

func TestReads_FailBeforeBootstrap(t *testing.T) {
	s, _ := tempStore(t)

	if _, err := s.LiquidBalance(); !errors.Is(err, ErrReadFailed) {
		t.Errorf("LiquidBalance error = %v, want ErrReadFailed", err)
	}
	if _, err := s.Accounts(); !errors.Is(err, ErrReadFailed) {
		t.Errorf("Accounts error = %v, want ErrReadFailed", err)
	}
}

func TestAccounts_OrderedByID(t *testing.T) {
	s, _ := tempStore(t)
	if err := s.EnsureReady(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.db.Exec(`
		INSERT INTO accounts (name, type, balance, is_liquid, growth_rate_apr) VALUES
		('Savings', 'savings', 800.0, 1, 0.045),
		('Pension', 'retirement', 15000.0, 0, 0.07)`)
	if err != nil {
		t.Fatalf("inserting fixture accounts: %v", err)
	}

	accounts, err := s.Accounts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("len(accounts) = %d, want 3", len(accounts))
	}
	names := []string{accounts[0].Name, accounts[1].Name, accounts[2].Name}
	want := []string{"Primary Checking", "Savings", "Pension"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if !accounts[1].GrowthRateAPR.Equal(decimal.RequireFromString("0.045")) {
		t.Errorf("Savings APR = %s, want 0.045", accounts[1].GrowthRateAPR)
	}
}
