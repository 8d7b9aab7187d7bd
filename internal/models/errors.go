package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrAmountNegative   = errors.New("the amount of an expense must not be negative")
	ErrVendorNameEmpty  = errors.New("the vendor name must be set")
	ErrCategoryEmpty    = errors.New("the category must be set")
)
