package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"stocktrack/domain"
)

// Summarize folds a transaction log into sales totals and a per-day
// breakdown. Only cash and credit sales contribute; purchases, stock
// adjustments and returns never appear in the figures. Totals are
// independent of input order, and the daily breakdown comes back sorted
// most recent date first. An empty log yields an all-zero report.
func Summarize(transactions []domain.Transaction) domain.SalesReport {
	report := domain.SalesReport{
		TotalRevenue:  decimal.Zero,
		CashRevenue:   decimal.Zero,
		CreditRevenue: decimal.Zero,
		Daily:         []domain.DailyBucket{},
	}

	buckets := make(map[string]*domain.DailyBucket)
	for _, t := range transactions {
		if !t.Type.IsSale() {
			continue
		}

		report.TotalRevenue = report.TotalRevenue.Add(t.Total)
		report.TotalUnits += t.Quantity
		if t.Type == domain.CashSale {
			report.CashRevenue = report.CashRevenue.Add(t.Total)
		} else {
			report.CreditRevenue = report.CreditRevenue.Add(t.Total)
		}

		b, ok := buckets[t.Date]
		if !ok {
			b = &domain.DailyBucket{Date: t.Date, Revenue: decimal.Zero}
			buckets[t.Date] = b
		}
		b.Revenue = b.Revenue.Add(t.Total)
		b.Units += t.Quantity
	}

	for _, b := range buckets {
		report.Daily = append(report.Daily, *b)
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Date > report.Daily[j].Date
	})

	return report
}
