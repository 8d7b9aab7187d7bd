package expenses

import (
	"errors"
	"net/http"

	"github.com/iconcile/expense-backend/internal/models"
)

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errCategoryInvalid   = errors.New("the specified category does not exist")
	errDateFormatInvalid = errors.New("the date could not be parsed, use the YYYY-MM-DD format")
	errMonthInvalid      = errors.New("the month must be between 1 and 12")
)

// CSV upload errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)
