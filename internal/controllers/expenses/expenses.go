package expenses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iconcile/expense-backend/internal/categorizer"
	"github.com/iconcile/expense-backend/internal/httputil"
	"github.com/iconcile/expense-backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRoutes registers the routes for expenses.
func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsList)
	r.GET("", GetExpenses)
	r.POST("", CreateExpense)

	r.OPTIONS("/:id", OptionsDetail)
	r.DELETE("/:id", DeleteExpense)

	r.OPTIONS("/upload-csv", httputil.OptionsPost)
	r.POST("/upload-csv", UploadCSV)

	r.OPTIONS("/anomalies", httputil.OptionsGet)
	r.GET("/anomalies", GetAnomalies)

	r.OPTIONS("/dashboard", httputil.OptionsGet)
	r.GET("/dashboard", GetDashboard)
}

// OptionsList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/expenses [options]
func OptionsList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/expenses/{id} [options]
func OptionsDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidUUID)
		return
	}

	var expense models.Expense
	if err := models.DB.First(&expense, uri.ID.UUID).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	httputil.OptionsDelete(c)
}

// GetExpenses returns all expenses, most recent first
//
//	@Summary		List expenses
//	@Description	Returns all expenses, ordered by date descending
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{array}		models.Expense
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/expenses [get]
func GetExpenses(c *gin.Context) {
	expenses := make([]models.Expense, 0)
	err := models.DB.
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Find(&expenses).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// CreateExpense creates a new expense
//
//	@Summary		Create expense
//	@Description	Creates a new expense. The category is inferred from the vendor name unless it is set explicitly. The anomaly flag is evaluated against the category average.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	models.Expense
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/expenses [post]
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	expense, err := editable.model()
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	if expense.Category == "" {
		expense.Category = categorizer.Categorize(expense.VendorName)
	} else if !slices.Contains(categorizer.Categories, expense.Category) {
		httputil.NewError(c, http.StatusBadRequest, errCategoryInvalid)
		return
	}

	if err := models.DB.Create(&expense).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	// The expense is saved before the evaluation so that it is part of
	// the category average itself.
	if err := expense.EvaluateAnomaly(models.DB); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := models.DB.Model(&expense).Update("anomaly", expense.Anomaly).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense. The anomaly flags of other expenses are not recalculated.
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidUUID)
		return
	}

	var expense models.Expense
	if err := models.DB.First(&expense, uri.ID.UUID).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := models.DB.Delete(&expense).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAnomalies returns all anomalous expenses
//
//	@Summary		List anomalies
//	@Description	Returns all expenses currently flagged as anomalous, ordered by date descending
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{array}		models.Expense
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/expenses/anomalies [get]
func GetAnomalies(c *gin.Context) {
	expenses, err := models.Anomalies(models.DB)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}
