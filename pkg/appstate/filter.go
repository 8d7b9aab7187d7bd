package appstate

import (
	"strings"

	"github.com/iconcile/expense-backend/pkg/client"
)

// Filter is a client side filter over an already loaded expense list.
// All set conditions must match.
type Filter struct {
	Query         string // Case-insensitive substring match on vendor name or description
	Category      string // Exact category match
	AnomaliesOnly bool
}

// Apply returns the expenses matching the filter, preserving order.
func (f Filter) Apply(expenses []client.Expense) []client.Expense {
	matched := make([]client.Expense, 0, len(expenses))

	query := strings.ToLower(strings.TrimSpace(f.Query))

	for _, expense := range expenses {
		if query != "" &&
			!strings.Contains(strings.ToLower(expense.VendorName), query) &&
			!strings.Contains(strings.ToLower(expense.Description), query) {
			continue
		}

		if f.Category != "" && expense.Category != f.Category {
			continue
		}

		if f.AnomaliesOnly && !expense.Anomaly {
			continue
		}

		matched = append(matched, expense)
	}

	return matched
}
