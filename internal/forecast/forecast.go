// Package forecast projects the liquid cash balance over a fixed
// 30-day horizon.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aurumfin/aurum/internal/model"
	"github.com/aurumfin/aurum/internal/store"
)

// HorizonDays is the fixed length of the projection.
const HorizonDays = 30

// dateLayout is the calendar-date form stamped on every point.
const dateLayout = "2006-01-02"

// dailyDecay is the flat per-day spend assumed by the projection. It is
// a fixed policy, not derived from transactions or scheduled items.
var dailyDecay = decimal.RequireFromString("16.25")

// StartingBalance reads the aggregate liquid balance from the store at
// path. A store with no liquid accounts yields zero.
func StartingBalance(path string) (decimal.Decimal, error) {
	s, err := store.Open(path)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = s.Close() }()
	return s.LiquidBalance()
}

// Project builds the balance series anchored on the current UTC calendar
// date. It cannot fail: every finite starting balance produces a full
// series.
func Project(start decimal.Decimal) []model.ForecastPoint {
	return ProjectAt(start, time.Now().UTC())
}

// ProjectAt is Project anchored on the calendar date of today. Points are
// ordered by ascending date, offset zero first; each balance is the
// starting balance minus the accumulated decay, rounded to cents half
// away from zero.
func ProjectAt(start decimal.Decimal, today time.Time) []model.ForecastPoint {
	points := make([]model.ForecastPoint, 0, HorizonDays)
	for offset := 0; offset < HorizonDays; offset++ {
		change := dailyDecay.Mul(decimal.NewFromInt(int64(offset)))
		points = append(points, model.ForecastPoint{
			Date:    today.AddDate(0, 0, offset).Format(dateLayout),
			Balance: start.Sub(change).Round(2),
		})
	}
	return points
}

// Forecast composes StartingBalance and Project: the full series for the
// store at path. The store must already be bootstrapped.
func Forecast(path string) ([]model.ForecastPoint, error) {
	start, err := StartingBalance(path)
	if err != nil {
		return nil, err
	}
	return Project(start), nil
}
