package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// APIResponse represents the standard API response envelope
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Status     bool        `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"total_pages"`
}

// SuccessResponse sends a 200 response with the standard envelope
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 response with the standard envelope
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// BadRequestResponse sends a 400 response
func BadRequestResponse(c *gin.Context, message string, err error) {
	resp := APIResponse{
		Status:  false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// UnauthorizedResponse sends a 401 response
func UnauthorizedResponse(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, APIResponse{
		Status:  false,
		Message: message,
	})
}

// ForbiddenResponse sends a 403 response
func ForbiddenResponse(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, APIResponse{
		Status:  false,
		Message: message,
	})
}

// NotFoundResponse sends a 404 response
func NotFoundResponse(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, APIResponse{
		Status:  false,
		Message: message,
	})
}

// ConflictResponse sends a 409 response
func ConflictResponse(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, APIResponse{
		Status:  false,
		Message: message,
	})
}

// InternalServerErrorResponse sends a 500 response
func InternalServerErrorResponse(c *gin.Context, message string, err error) {
	resp := APIResponse{
		Status:  false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// PaginatedSuccessResponse sends a 200 response with pagination metadata
func PaginatedSuccessResponse(c *gin.Context, message string, data interface{}, page, limit int, total int64) {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, PaginatedResponse{
		Status:     true,
		Message:    message,
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetPaginationParams extracts page and limit query parameters with defaults
func GetPaginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}

	return page, limit
}
