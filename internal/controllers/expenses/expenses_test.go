package expenses_test

import (
	"net/http"
	"testing"

	"github.com/iconcile/expense-backend/internal/models"
	"github.com/iconcile/expense-backend/test"
	"github.com/shopspring/decimal"
)

// createTestExpense submits an expense via the API and returns the
// created resource.
func (suite *TestSuiteStandard) createTestExpense(body map[string]any) models.Expense {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var expense models.Expense
	test.DecodeResponse(suite.T(), &recorder, &expense)

	return expense
}

func (suite *TestSuiteStandard) TestOptions() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsDetail() {
	expense := suite.createTestExpense(map[string]any{
		"date":       "2024-03-01",
		"amount":     450,
		"vendorName": "Swiggy",
	})

	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/expenses/"+expense.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsDetailInvalidUUID() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/expenses/notauuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOptionsDetailNotFound() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/expenses/5b95e1a9-522d-4a36-9074-32f7c15846a9", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateExpense() {
	expense := suite.createTestExpense(map[string]any{
		"date":        "2024-03-01",
		"amount":      450,
		"vendorName":  "Swiggy",
		"description": "Friday night dinner",
	})

	suite.Assert().Equal("Swiggy", expense.VendorName)
	suite.Assert().Equal("Food", expense.Category, "category must be inferred from the vendor name")
	suite.Assert().False(expense.Anomaly)
	suite.Assert().True(expense.Amount.Equal(decimal.NewFromInt(450)))
	suite.Assert().Equal(2024, expense.Date.Year())
}

func (suite *TestSuiteStandard) TestCreateExpenseCategoryOverride() {
	expense := suite.createTestExpense(map[string]any{
		"date":       "2024-03-01",
		"amount":     450,
		"vendorName": "Swiggy",
		"category":   "Entertainment",
	})

	suite.Assert().Equal("Entertainment", expense.Category, "an explicit category must not be overwritten")
}

func (suite *TestSuiteStandard) TestCreateExpenseUnknownVendor() {
	expense := suite.createTestExpense(map[string]any{
		"date":       "2024-03-01",
		"amount":     42,
		"vendorName": "Completely Unknown Shop 42",
	})

	suite.Assert().Equal("Other", expense.Category)
}

func (suite *TestSuiteStandard) TestCreateExpenseAnomaly() {
	for i := 0; i < 3; i++ {
		suite.createTestExpense(map[string]any{
			"date":       "2024-03-01",
			"amount":     100,
			"vendorName": "Swiggy",
		})
	}

	// avg = 575 including this expense, threshold = 1725
	expense := suite.createTestExpense(map[string]any{
		"date":       "2024-03-02",
		"amount":     2000,
		"vendorName": "Swiggy",
	})

	suite.Assert().True(expense.Anomaly, "2000 exceeds 3x the category average")
}

func (suite *TestSuiteStandard) TestCreateExpenseInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"empty body", ""},
		{"invalid category", map[string]any{"date": "2024-03-01", "amount": 10, "vendorName": "Swiggy", "category": "Gambling"}},
		{"invalid date", map[string]any{"date": "banana", "amount": 10, "vendorName": "Swiggy"}},
		{"missing vendor", map[string]any{"date": "2024-03-01", "amount": 10}},
		{"negative amount", map[string]any{"date": "2024-03-01", "amount": -10, "vendorName": "Swiggy"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/expenses", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetExpenses() {
	older := suite.createTestExpense(map[string]any{
		"date":       "2024-03-01",
		"amount":     100,
		"vendorName": "Swiggy",
	})
	newer := suite.createTestExpense(map[string]any{
		"date":       "2024-03-02",
		"amount":     200,
		"vendorName": "Uber",
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var expenses []models.Expense
	test.DecodeResponse(suite.T(), &recorder, &expenses)

	suite.Require().Len(expenses, 2)
	suite.Assert().Equal(newer.ID, expenses[0].ID, "the most recent expense must be first")
	suite.Assert().Equal(older.ID, expenses[1].ID)
}

func (suite *TestSuiteStandard) TestGetExpensesEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().Equal("[]", recorder.Body.String(), "an empty list must be an empty JSON array, not null")
}

func (suite *TestSuiteStandard) TestGetExpensesDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	expense := suite.createTestExpense(map[string]any{
		"date":       "2024-03-01",
		"amount":     100,
		"vendorName": "Swiggy",
	})

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/expenses/"+expense.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/expenses", "")
	var expenses []models.Expense
	test.DecodeResponse(suite.T(), &recorder, &expenses)
	suite.Assert().Empty(expenses)

	// Deleting a deleted expense fails
	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/expenses/"+expense.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteExpenseInvalidUUID() {
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/expenses/notauuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetAnomalies() {
	for i := 0; i < 3; i++ {
		suite.createTestExpense(map[string]any{
			"date":       "2024-03-01",
			"amount":     100,
			"vendorName": "Swiggy",
		})
	}
	flagged := suite.createTestExpense(map[string]any{
		"date":       "2024-03-02",
		"amount":     2000,
		"vendorName": "Swiggy",
	})
	suite.Require().True(flagged.Anomaly)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses/anomalies", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var expenses []models.Expense
	test.DecodeResponse(suite.T(), &recorder, &expenses)

	suite.Require().Len(expenses, 1)
	suite.Assert().Equal(flagged.ID, expenses[0].ID)
}
