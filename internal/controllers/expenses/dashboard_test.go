package expenses_test

import (
	"net/http"
	"time"

	"github.com/iconcile/expense-backend/internal/controllers/expenses"
	"github.com/iconcile/expense-backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDashboard() {
	suite.createTestExpense(map[string]any{
		"date":       "2024-03-01",
		"amount":     450,
		"vendorName": "Swiggy",
	})
	suite.createTestExpense(map[string]any{
		"date":       "2024-03-05",
		"amount":     50,
		"vendorName": "Zomato",
	})
	suite.createTestExpense(map[string]any{
		"date":       "2024-03-10",
		"amount":     200,
		"vendorName": "Uber",
	})

	// Other months do not contribute
	suite.createTestExpense(map[string]any{
		"date":       "2024-04-01",
		"amount":     10000,
		"vendorName": "Swiggy",
	})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses/dashboard?year=2024&month=3", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard expenses.DashboardData
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	suite.Assert().Equal(2024, dashboard.Year)
	suite.Assert().Equal(3, dashboard.Month)
	suite.Assert().Equal(0, dashboard.AnomalyCount)
	suite.Assert().Empty(dashboard.Anomalies)

	suite.Require().Len(dashboard.MonthlyCategoryTotals, 2)
	suite.Assert().True(dashboard.MonthlyCategoryTotals["Food"].Equal(decimal.NewFromInt(500)))
	suite.Assert().True(dashboard.MonthlyCategoryTotals["Transport"].Equal(decimal.NewFromInt(200)))

	suite.Require().Len(dashboard.TopVendors, 3)
	suite.Assert().Equal("Swiggy", dashboard.TopVendors[0].VendorName, "the vendor with the highest spend must be first")
}

func (suite *TestSuiteStandard) TestDashboardTopVendorLimit() {
	vendors := []string{"One", "Two", "Three", "Four", "Five", "Six"}
	for i, vendor := range vendors {
		suite.createTestExpense(map[string]any{
			"date":       "2024-03-01",
			"amount":     100 * (i + 1),
			"vendorName": vendor,
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses/dashboard?year=2024&month=3", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard expenses.DashboardData
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	suite.Assert().Len(dashboard.TopVendors, 5, "the vendor list must be limited to five entries")
}

func (suite *TestSuiteStandard) TestDashboardAnomalies() {
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

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses/dashboard?year=2024&month=3", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard expenses.DashboardData
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	suite.Assert().Equal(1, dashboard.AnomalyCount)
	suite.Require().Len(dashboard.Anomalies, 1)
	suite.Assert().Equal(flagged.ID, dashboard.Anomalies[0].ID)
}

func (suite *TestSuiteStandard) TestDashboardEmptyMonth() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses/dashboard?year=2024&month=3", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard expenses.DashboardData
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	suite.Assert().Empty(dashboard.MonthlyCategoryTotals)
	suite.Assert().Empty(dashboard.TopVendors)
	suite.Assert().Equal(0, dashboard.AnomalyCount)
}

func (suite *TestSuiteStandard) TestDashboardDefaults() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/expenses/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard expenses.DashboardData
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	now := time.Now().UTC()
	suite.Assert().Equal(now.Year(), dashboard.Year)
	suite.Assert().Equal(int(now.Month()), dashboard.Month)
}

func (suite *TestSuiteStandard) TestDashboardInvalidQuery() {
	tests := []string{
		"http://example.com/expenses/dashboard?month=13",
		"http://example.com/expenses/dashboard?month=-1",
		"http://example.com/expenses/dashboard?month=banana",
		"http://example.com/expenses/dashboard?year=banana",
	}

	for _, url := range tests {
		recorder := test.Request(suite.T(), http.MethodGet, url, "")
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}
}
