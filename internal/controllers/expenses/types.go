package expenses

import (
	"time"

	"github.com/iconcile/expense-backend/internal/models"
	ez_uuid "github.com/iconcile/expense-backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// ExpenseEditable contains the fields a client can set when creating an
// expense. The category is optional, it is inferred from the vendor name
// when it is not set.
type ExpenseEditable struct {
	Date        string          `json:"date" example:"2024-03-01" binding:"required"`         // Day the expense occurred on, as YYYY-MM-DD
	Amount      decimal.Decimal `json:"amount" example:"450" minimum:"0"`                     // The amount spent
	VendorName  string          `json:"vendorName" example:"Swiggy" binding:"required"`       // Vendor the expense was paid to
	Description string          `json:"description" example:"Friday night dinner" default:""` // A note
	Category    string          `json:"category" example:"Food" default:""`                   // Optional manual category override
}

// model returns the database resource for the API representation of the
// editable fields.
func (editable ExpenseEditable) model() (models.Expense, error) {
	date, err := parseDate(editable.Date)
	if err != nil {
		return models.Expense{}, err
	}

	return models.Expense{
		Date:        date,
		Amount:      editable.Amount,
		VendorName:  editable.VendorName,
		Description: editable.Description,
		Category:    editable.Category,
	}, nil
}

// UploadResponse is the response of the CSV import endpoint.
type UploadResponse struct {
	Message  string           `json:"message" example:"Uploaded successfully"` // Human readable status message
	Count    int              `json:"count" example:"10"`                      // Number of imported expenses
	Expenses []models.Expense `json:"expenses"`                                // The imported expenses
}

// DashboardData is the aggregate view for one month. It is recomputed on
// every request.
type DashboardData struct {
	MonthlyCategoryTotals map[string]decimal.Decimal `json:"monthlyCategoryTotals"` // Spend per category in the month
	TopVendors            []models.VendorTotal       `json:"topVendors"`            // The five vendors with the highest spend
	Anomalies             []models.Expense           `json:"anomalies"`             // Anomalous expenses of the month
	AnomalyCount          int                        `json:"anomalyCount" example:"1"`
	Month                 int                        `json:"month" example:"3"`
	Year                  int                        `json:"year" example:"2024"`
}

// dateFormats are the accepted date layouts, tried in order. Day-first
// layouts take precedence for ambiguous dates.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
}

func parseDate(value string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, errDateFormatInvalid
}
