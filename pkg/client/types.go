package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an expense as returned by the API.
type Expense struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	VendorName  string          `json:"vendorName"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Anomaly     bool            `json:"anomaly"`
}

// ExpenseRequest is the payload for creating an expense. Category is
// optional, the server infers it from the vendor name when it is empty.
type ExpenseRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	VendorName  string          `json:"vendorName"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// ImportResult is the response of the CSV import endpoint.
type ImportResult struct {
	Message  string    `json:"message"`
	Count    int       `json:"count"`
	Expenses []Expense `json:"expenses"`
}

// VendorTotal is the total spend for one vendor.
type VendorTotal struct {
	VendorName string          `json:"vendorName"`
	Total      decimal.Decimal `json:"total"`
}

// DashboardData is the aggregate view for one month.
type DashboardData struct {
	MonthlyCategoryTotals map[string]decimal.Decimal `json:"monthlyCategoryTotals"`
	TopVendors            []VendorTotal              `json:"topVendors"`
	Anomalies             []Expense                  `json:"anomalies"`
	AnomalyCount          int                        `json:"anomalyCount"`
	Month                 int                        `json:"month"`
	Year                  int                        `json:"year"`
}
