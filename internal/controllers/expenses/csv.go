package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iconcile/expense-backend/internal/categorizer"
	"github.com/iconcile/expense-backend/internal/httputil"
	"github.com/iconcile/expense-backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// UploadCSV imports expenses from a CSV file
//
//	@Summary		Import expenses
//	@Description	Imports expenses from a CSV file with the columns date, amount, vendor name and an optional description. The first row is treated as a header and skipped, rows that cannot be parsed are skipped.
//	@Tags			Expenses
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		200		{object}	UploadResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			file	formData	file	true	"File to import"
//	@Router			/expenses/upload-csv [post]
func UploadCSV(c *gin.Context) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}
	defer f.Close()

	parsed, err := parseExpenses(c, f)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	// Categories that received new expenses. Their anomaly flags are
	// recalculated once after the whole file is saved.
	affected := make(map[string]struct{})
	ids := make([]uuid.UUID, 0, len(parsed))

	for _, expense := range parsed {
		expense.Category = categorizer.Categorize(expense.VendorName)

		if err := models.DB.Create(&expense).Error; err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Str("vendor", expense.VendorName).Err(err).Msg("skipping row")
			continue
		}

		affected[expense.Category] = struct{}{}
		ids = append(ids, expense.ID)
	}

	for category := range affected {
		if err := models.RecalculateAnomalies(models.DB, category); err != nil {
			httputil.NewError(c, status(err), err)
			return
		}
	}

	// Read the imported expenses back so that the response carries the
	// recalculated anomaly flags.
	imported := make([]models.Expense, 0, len(ids))
	err = models.DB.
		Where("id IN ?", ids).
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Find(&imported).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Message:  "Uploaded successfully",
		Count:    len(imported),
		Expenses: imported,
	})
}

// parseExpenses reads the uploaded CSV file. The expected columns are
// date, amount, vendor name and an optional description. The first row
// is skipped as the header, unparseable rows are skipped with a log
// message.
func parseExpenses(c *gin.Context, f io.Reader) ([]models.Expense, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	expenses := make([]models.Expense, 0)

	// Header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return expenses, nil
		}
		return nil, fmt.Errorf("could not read the CSV file: %w", err)
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Int("line", line).Err(err).Msg("skipping row")
			continue
		}

		if len(record) < 3 {
			log.Debug().Str("request-id", requestid.Get(c)).Int("line", line).Msg("skipping row with too few columns")
			continue
		}

		date, err := parseDate(strings.TrimSpace(record[0]))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Int("line", line).Err(err).Msg("skipping row")
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Int("line", line).Err(err).Msg("skipping row")
			continue
		}

		var description string
		if len(record) > 3 {
			description = strings.TrimSpace(record[3])
		}

		expenses = append(expenses, models.Expense{
			Date:        date,
			Amount:      amount,
			VendorName:  strings.TrimSpace(record[2]),
			Description: description,
		})
	}

	return expenses, nil
}
