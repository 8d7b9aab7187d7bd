package models

import (
	"time"

	"github.com/iconcile/expense-backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// anomalyMultiplier is the factor an expense amount needs to exceed its
// category average by to be flagged as an anomaly.
var anomalyMultiplier = decimal.NewFromInt(3)

// Expense represents a single recorded expense.
type Expense struct {
	DefaultModel
	Date        time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`                            // Day the expense occurred on
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"450"`                 // The amount spent
	VendorName  string          `json:"vendorName" example:"Swiggy"`                                    // Vendor the expense was paid to
	Description string          `json:"description" example:"Friday night dinner" default:""`           // A note
	Category    string          `json:"category" example:"Food"`                                        // Category, inferred from the vendor when not set explicitly
	Anomaly     bool            `json:"anomaly" example:"false" default:"false"`                        // Did the amount exceed three times the category average?
}

// BeforeSave validates the expense and sets the timezone for the Date to UTC.
func (e *Expense) BeforeSave(_ *gorm.DB) (err error) {
	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if e.VendorName == "" {
		return ErrVendorNameEmpty
	}

	if e.Category == "" {
		return ErrCategoryEmpty
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, see DefaultModel.
func (e *Expense) AfterFind(tx *gorm.DB) (err error) {
	e.Date = e.Date.In(time.UTC)
	return e.DefaultModel.AfterFind(tx)
}

// CategoryAverage returns the average amount over all expenses of a category.
// The second return value reports whether the category has any expenses.
func CategoryAverage(db *gorm.DB, category string) (decimal.Decimal, bool, error) {
	var avg decimal.NullDecimal

	err := db.Model(&Expense{}).
		Where("category = ?", category).
		Select("AVG(amount)").
		Row().Scan(&avg)
	if err != nil {
		return decimal.Zero, false, err
	}

	return avg.Decimal, avg.Valid, nil
}

// EvaluateAnomaly sets the Anomaly flag from the current category average.
//
// An expense is an anomaly if its amount exceeds three times the average
// amount of its category. The average is computed over all expenses of the
// category, including this one, so the expense has to be saved first.
func (e *Expense) EvaluateAnomaly(db *gorm.DB) error {
	avg, ok, err := CategoryAverage(db, e.Category)
	if err != nil {
		return err
	}

	if !ok || avg.IsZero() {
		e.Anomaly = false
		return nil
	}

	e.Anomaly = e.Amount.GreaterThan(avg.Mul(anomalyMultiplier))
	return nil
}

// RecalculateAnomalies re-evaluates the anomaly flag for every expense of a
// category. Called after batch imports where averages may shift significantly.
func RecalculateAnomalies(db *gorm.DB, category string) error {
	avg, ok, err := CategoryAverage(db, category)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	threshold := avg.Mul(anomalyMultiplier)

	// Hooks are skipped, the batch update would run the validations
	// against the empty model.
	return db.Session(&gorm.Session{SkipHooks: true}).
		Model(&Expense{}).
		Where("category = ?", category).
		Update("anomaly", gorm.Expr("amount > ?", threshold)).Error
}

// CategoryTotal is the summed spend for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyCategoryTotals returns the spend per category for one month,
// highest total first.
func MonthlyCategoryTotals(db *gorm.DB, month types.Month) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)

	err := db.Model(&Expense{}).
		Select("category, SUM(amount) AS total").
		Where("date >= date(?)", month.First()).
		Where("date < date(?)", month.Next()).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// VendorTotal is the summed spend for one vendor.
type VendorTotal struct {
	VendorName string          `json:"vendorName" gorm:"column:vendor_name"`
	Total      decimal.Decimal `json:"total"`
}

// TopVendors returns the vendors with the highest spend in one month,
// highest total first.
func TopVendors(db *gorm.DB, month types.Month, limit int) ([]VendorTotal, error) {
	totals := make([]VendorTotal, 0)

	err := db.Model(&Expense{}).
		Select("vendor_name, SUM(amount) AS total").
		Where("date >= date(?)", month.First()).
		Where("date < date(?)", month.Next()).
		Group("vendor_name").
		Order("total DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// Anomalies returns all expenses flagged as anomalous.
func Anomalies(db *gorm.DB) ([]Expense, error) {
	expenses := make([]Expense, 0)

	err := db.
		Where("anomaly = ?", true).
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// AnomaliesInMonth returns the anomalous expenses of one month.
func AnomaliesInMonth(db *gorm.DB, month types.Month) ([]Expense, error) {
	expenses := make([]Expense, 0)

	err := db.
		Where("anomaly = ?", true).
		Where("date >= date(?)", month.First()).
		Where("date < date(?)", month.Next()).
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}
