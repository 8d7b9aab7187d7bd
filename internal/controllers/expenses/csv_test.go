package expenses_test

import (
	"net/http"

	"github.com/iconcile/expense-backend/internal/controllers/expenses"
	"github.com/iconcile/expense-backend/internal/models"
	"github.com/iconcile/expense-backend/test"
)

func (suite *TestSuiteStandard) TestUploadCSV() {
	content := `date,amount,vendor_name,description
2024-03-01,450,Swiggy,Dinner
2024-03-02,1200,Amazon,Headphones
2024-03-03,89,Uber,Commute
2024-03-04,3200,Big Bazaar,Monthly groceries
2024-03-05,250,Netflix,Subscription
2024-03-06,180,Zomato,Lunch
2024-03-07,99,Spotify,Subscription
2024-03-08,560,Shell,Fuel
2024-03-09,1500,Apollo Pharmacy,Medicines
2024-03-10,75,Starbucks,Coffee
`

	body, headers := test.CSVFile(suite.T(), "expenses.csv", content)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response expenses.UploadResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(10, response.Count)
	suite.Assert().Len(response.Expenses, 10)

	// Categories are always inferred for imported rows
	for _, expense := range response.Expenses {
		suite.Assert().NotEmpty(expense.Category)
		if expense.VendorName == "Swiggy" {
			suite.Assert().Equal("Food", expense.Category)
		}
	}

	// The imported expenses appear in the list
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/expenses", "")
	var list []models.Expense
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list, 10)
}

func (suite *TestSuiteStandard) TestUploadCSVDateFormats() {
	content := `date,amount,vendor_name,description
2024-03-01,100,Swiggy,ISO
15/03/2024,100,Swiggy,Day first
03-04-2024,100,Swiggy,Day first with dashes
`

	body, headers := test.CSVFile(suite.T(), "expenses.csv", content)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response expenses.UploadResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(3, response.Count)
}

func (suite *TestSuiteStandard) TestUploadCSVSkipsMalformedRows() {
	content := `date,amount,vendor_name,description
2024-03-01,450,Swiggy,Dinner
banana,100,Swiggy,Bad date
2024-03-03,notanumber,Swiggy,Bad amount
2024-03-04,100
`

	body, headers := test.CSVFile(suite.T(), "expenses.csv", content)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response expenses.UploadResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(1, response.Count, "malformed rows must be skipped")
	suite.Require().Len(response.Expenses, 1)
	suite.Assert().Equal("Swiggy", response.Expenses[0].VendorName)
}

func (suite *TestSuiteStandard) TestUploadCSVHeaderOnly() {
	body, headers := test.CSVFile(suite.T(), "expenses.csv", "date,amount,vendor_name,description\n")
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response expenses.UploadResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(0, response.Count)
}

func (suite *TestSuiteStandard) TestUploadCSVNoFile() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUploadCSVWrongSuffix() {
	body, headers := test.CSVFile(suite.T(), "expenses.txt", "date,amount,vendor_name,description\n")
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUploadCSVRecalculatesAnomalies() {
	for i := 0; i < 3; i++ {
		suite.createTestExpense(map[string]any{
			"date":       "2024-03-01",
			"amount":     100,
			"vendorName": "Swiggy",
		})
	}

	content := `date,amount,vendor_name,description
2024-03-02,2000,Swiggy,Party
`

	body, headers := test.CSVFile(suite.T(), "expenses.csv", content)
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/expenses/upload-csv", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response expenses.UploadResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Expenses, 1)
	suite.Assert().True(response.Expenses[0].Anomaly, "the anomaly flag must be recalculated after the import")
}
