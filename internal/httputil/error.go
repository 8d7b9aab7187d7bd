package httputil

import (
	"github.com/gin-gonic/gin"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// NewError writes an HTTPError response with the given status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}
