// Package model defines domain types for aurum accounts and forecasts.
package model

import "github.com/shopspring/decimal"

// Account types stored in the `type` column.
const (
	AccountTypeCurrent = "current"
	AccountTypeSavings = "savings"
)

// Account is one row of the accounts table. Balance may be negative
// (overdraft). GrowthRateAPR is persisted but not yet consumed by the
// forecast.
type Account struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	IsLiquid      bool            `json:"is_liquid"`
	GrowthRateAPR decimal.Decimal `json:"growth_rate_apr"`
}

// ForecastPoint is one day of the projected balance series, the unit
// returned to the host shell: an ISO-8601 calendar date and the
// cent-rounded balance for that day.
type ForecastPoint struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}
