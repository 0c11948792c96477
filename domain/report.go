package domain

import "github.com/shopspring/decimal"

// DailyBucket aggregates sales revenue and units for one calendar date.
type DailyBucket struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Units   int64           `json:"units"`
}

// SalesReport is the summary produced over a transaction log. Only cash
// and credit sales contribute to its figures.
type SalesReport struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalUnits    int64           `json:"total_units"`
	CashRevenue   decimal.Decimal `json:"cash_revenue"`
	CreditRevenue decimal.Decimal `json:"credit_revenue"`
	Daily         []DailyBucket   `json:"daily_breakdown"`
}
