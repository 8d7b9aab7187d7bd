package expenses

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iconcile/expense-backend/internal/httputil"
	"github.com/iconcile/expense-backend/internal/models"
	"github.com/iconcile/expense-backend/internal/types"
	"github.com/shopspring/decimal"
)

// topVendorCount is the number of vendors the dashboard reports.
const topVendorCount = 5

type DashboardQuery struct {
	Year  int `form:"year"`  // Year of the dashboard, defaults to the current year
	Month int `form:"month"` // Month of the dashboard, defaults to the current month
}

// GetDashboard returns the aggregate view for one month
//
//	@Summary		Get dashboard
//	@Description	Returns the per category totals, the top vendors and the anomalies for one month. Year and month default to the current date.
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	DashboardData
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			year	query		int	false	"Year, defaults to the current year"
//	@Param			month	query		int	false	"Month, defaults to the current month"
//	@Router			/expenses/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query DashboardQuery
	if err := c.ShouldBind(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	now := time.Now().UTC()
	if query.Year == 0 {
		query.Year = now.Year()
	}
	if query.Month == 0 {
		query.Month = int(now.Month())
	}

	if query.Month < 1 || query.Month > 12 {
		httputil.NewError(c, http.StatusBadRequest, errMonthInvalid)
		return
	}

	month := types.NewMonth(query.Year, time.Month(query.Month))

	totals, err := models.MonthlyCategoryTotals(models.DB, month)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	categoryTotals := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		categoryTotals[total.Category] = total.Total
	}

	vendors, err := models.TopVendors(models.DB, month, topVendorCount)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	anomalies, err := models.AnomaliesInMonth(models.DB, month)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, DashboardData{
		MonthlyCategoryTotals: categoryTotals,
		TopVendors:            vendors,
		Anomalies:             anomalies,
		AnomalyCount:          len(anomalies),
		Month:                 query.Month,
		Year:                  query.Year,
	})
}
