package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdam-be-svc/pkg/utils"
)

// ErrorHandler recovers from panics and converts them to a 500 response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.APIResponse{
					Status:  false,
					Message: "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// NoRouteHandler handles requests to unknown paths
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.APIResponse{
			Status:  false,
			Message: "Route not found",
		})
	}
}

// NoMethodHandler handles requests with unsupported methods
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, utils.APIResponse{
			Status:  false,
			Message: "Method not allowed",
		})
	}
}
