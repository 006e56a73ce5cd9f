package forecast

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurumfin/aurum/internal/store"

	_ "modernc.org/sqlite"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", s, err)
	}
	return d
}

func TestProjectAt_ExactSeries(t *testing.T) {
	today := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	points := ProjectAt(dec(t, "2500"), today)

	if len(points) != HorizonDays {
		t.Fatalf("len(points) = %d, want %d", len(points), HorizonDays)
	}

	checks := []struct {
		offset  int
		date    string
		balance string
	}{
		{0, "2026-03-14", "2500"},
		{1, "2026-03-15", "2483.75"},
		{2, "2026-03-16", "2467.5"},
		{29, "2026-04-12", "2028.25"},
	}
	for _, c := range checks {
		p := points[c.offset]
		if p.Date != c.date {
			t.Errorf("points[%d].Date = %q, want %q", c.offset, p.Date, c.date)
		}
		if !p.Balance.Equal(dec(t, c.balance)) {
			t.Errorf("points[%d].Balance = %s, want %s", c.offset, p.Balance, c.balance)
		}
	}
}

func TestProjectAt_ZeroStartGoesNegative(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := ProjectAt(decimal.Zero, today)

	if !points[0].Balance.IsZero() {
		t.Errorf("points[0].Balance = %s, want 0", points[0].Balance)
	}
	if !points[1].Balance.Equal(dec(t, "-16.25")) {
		t.Errorf("points[1].Balance = %s, want -16.25", points[1].Balance)
	}
}

func TestProjectAt_RoundsHalfAwayFromZero(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Offset zero keeps the raw start, so boundary halves show the
	// rounding mode directly.
	pos := ProjectAt(dec(t, "10.005"), today)
	if !pos[0].Balance.Equal(dec(t, "10.01")) {
		t.Errorf("10.005 rounds to %s, want 10.01", pos[0].Balance)
	}

	neg := ProjectAt(dec(t, "-10.005"), today)
	if !neg[0].Balance.Equal(dec(t, "-10.01")) {
		t.Errorf("-10.005 rounds to %s, want -10.01", neg[0].Balance)
	}
}

func TestProjectAt_EveryBalanceIsCentPrecise(t *testing.T) {
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	starts := []string{"0.001", "123.456", "-7.77777", "1000000.005"}
	for _, s := range starts {
		for i, p := range ProjectAt(dec(t, s), today) {
			if p.Balance.Exponent() < -2 {
				t.Errorf("start %s: points[%d] = %s has sub-cent precision", s, i, p.Balance)
			}
		}
	}
}

func TestProjectAt_DatesAscendDaily(t *testing.T) {
	// Cross a month boundary to catch naive day arithmetic.
	today := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	points := ProjectAt(dec(t, "100"), today)

	prev, err := time.Parse(dateLayout, points[0].Date)
	if err != nil {
		t.Fatalf("parsing date %q: %v", points[0].Date, err)
	}
	for i := 1; i < len(points); i++ {
		curr, err := time.Parse(dateLayout, points[i].Date)
		if err != nil {
			t.Fatalf("parsing date %q: %v", points[i].Date, err)
		}
		if got := curr.Sub(prev); got != 24*time.Hour {
			t.Errorf("points[%d] is %v after points[%d], want 24h", i, got, i-1)
		}
		prev = curr
	}
}

func TestProject_AnchorsOnTodayUTC(t *testing.T) {
	points := Project(dec(t, "50"))
	if len(points) != HorizonDays {
		t.Fatalf("len(points) = %d, want %d", len(points), HorizonDays)
	}
	want := time.Now().UTC().Format(dateLayout)
	if points[0].Date != want {
		t.Errorf("points[0].Date = %q, want today %q", points[0].Date, want)
	}

	// Same input, same output.
	again := Project(dec(t, "50"))
	for i := range points {
		if points[i].Date != again[i].Date || !points[i].Balance.Equal(again[i].Balance) {
			t.Fatalf("points[%d] differs between identical calls: %+v vs %+v", i, points[i], again[i])
		}
	}
}

func TestForecast_FromSeededStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurum.sqlite3")
	if err := store.EnsureReady(path); err != nil {
		t.Fatalf("bootstrapping store: %v", err)
	}

	points, err := Forecast(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != HorizonDays {
		t.Fatalf("len(points) = %d, want %d", len(points), HorizonDays)
	}
	if !points[0].Balance.Equal(dec(t, "2500")) {
		t.Errorf("points[0].Balance = %s, want seed 2500", points[0].Balance)
	}
	if !points[29].Balance.Equal(dec(t, "2028.25")) {
		t.Errorf("points[29].Balance = %s, want 2028.25", points[29].Balance)
	}
}

func TestStartingBalance_IgnoresNonLiquid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurum.sqlite3")
	if err := store.EnsureReady(path); err != nil {
		t.Fatalf("bootstrapping store: %v", err)
	}

	// Flip the seed account to non-liquid behind the store's back.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture connection: %v", err)
	}
	if _, err := db.Exec(`UPDATE accounts SET is_liquid = 0`); err != nil {
		t.Fatalf("demoting accounts: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("closing fixture connection: %v", err)
	}

	got, err := StartingBalance(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("StartingBalance = %s, want 0", got)
	}
}

func TestForecast_PropagatesReadFailure(t *testing.T) {
	// A path that was never bootstrapped has no accounts table.
	path := filepath.Join(t.TempDir(), "aurum.sqlite3")
	_, err := Forecast(path)
	if !errors.Is(err, store.ErrReadFailed) {
		t.Errorf("error = %v, want ErrReadFailed", err)
	}
}
