package appstate

import (
	"sort"

	"github.com/iconcile/expense-backend/pkg/client"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CategoryShare is one category's share of the monthly spend.
type CategoryShare struct {
	Category string
	Total    decimal.Decimal
	Percent  float64 // Share of the total monthly spend, 0 to 100
}

// TotalSpend returns the sum of all category totals of the dashboard.
func TotalSpend(dashboard client.DashboardData) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range dashboard.MonthlyCategoryTotals {
		total = total.Add(amount)
	}

	return total
}

// Breakdown returns the category totals of the dashboard sorted by
// total descending, each with its percentage of the monthly spend. An
// empty month returns an empty breakdown.
func Breakdown(dashboard client.DashboardData) []CategoryShare {
	total := TotalSpend(dashboard)

	shares := make([]CategoryShare, 0, len(dashboard.MonthlyCategoryTotals))
	for category, amount := range dashboard.MonthlyCategoryTotals {
		share := CategoryShare{
			Category: category,
			Total:    amount,
		}

		if total.IsPositive() {
			share.Percent, _ = amount.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}

		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Total.Equal(shares[j].Total) {
			return shares[i].Category < shares[j].Category
		}
		return shares[i].Total.GreaterThan(shares[j].Total)
	})

	return shares
}

// printer renders amounts in the fixed display locale.
var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders an amount for display, e.g. "₹ 1,350.00".
func FormatAmount(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return printer.Sprint(currency.Symbol(currency.INR.Amount(value)))
}
