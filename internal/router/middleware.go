package router

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/iconcile/expense-backend/internal/models"
)

// URLMiddleware sets the URL the API is accessed on for all handlers.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}
