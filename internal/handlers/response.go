package handlers

import (
	"github.com/gin-gonic/gin"
)

// Pagination is the envelope block describing the returned window.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondList(c *gin.Context, status int, data interface{}, pagination Pagination) {
	c.JSON(status, gin.H{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

func respondValidationError(c *gin.Context, status int, details map[string]string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   "Validation failed",
		"details": details,
	})
}
