// Package appstate owns the application state for expense tracker
// frontends. A single Controller holds the loaded expense list, the
// dashboard snapshot and the month selection, and reloads both lists
// after every mutation.
package appstate

import (
	"time"

	"github.com/iconcile/expense-backend/pkg/client"
	"github.com/shopspring/decimal"
)

// Tab is one of the top level views.
type Tab string

const (
	TabExpenses  Tab = "expenses"
	TabAdd       Tab = "add"
	TabUpload    Tab = "upload"
	TabDashboard Tab = "dashboard"
)

// State is a snapshot of the application state. It is copied out of the
// Controller, mutating it has no effect.
type State struct {
	ActiveTab Tab

	// Last successfully loaded data. Failed reloads leave these at
	// their previous value.
	Expenses  []client.Expense
	Dashboard client.DashboardData

	// Selected dashboard month
	Year  int
	Month int

	Draft    Draft  // Draft for the expense creation form
	FileName string // Selected file for the CSV upload

	Message string // Transient confirmation message of the last successful action
	Err     error  // Error of the last failed action
}

// Draft is the mutable draft of an expense before it is submitted.
type Draft struct {
	Date        string
	Amount      decimal.Decimal
	VendorName  string
	Description string
	Category    string
}

// NewDraft returns an empty draft with the date set to the current day.
func NewDraft() Draft {
	return Draft{
		Date: time.Now().Format("2006-01-02"),
	}
}

func (d Draft) validate() error {
	if d.VendorName == "" {
		return ErrVendorRequired
	}

	if !d.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if d.Date == "" {
		return ErrDateRequired
	}

	return nil
}

func (d Draft) request() client.ExpenseRequest {
	return client.ExpenseRequest{
		Date:        d.Date,
		Amount:      d.Amount,
		VendorName:  d.VendorName,
		Description: d.Description,
		Category:    d.Category,
	}
}
