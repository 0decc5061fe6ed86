package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"benches/internal/apperr"
)

// parsePagination читает limit (1..100, по умолчанию 10) и offset (>=0, по умолчанию 0)
func parsePagination(c *gin.Context) (limit, offset int, err error) {
	limit = 10
	offset = 0
	if lStr := c.Query("limit"); lStr != "" {
		l, convErr := strconv.Atoi(lStr)
		if convErr != nil || l < 1 || l > 100 {
			return 0, 0, apperr.Validation("limit must be an integer between 1 and 100")
		}
		limit = l
	}
	if oStr := c.Query("offset"); oStr != "" {
		o, convErr := strconv.Atoi(oStr)
		if convErr != nil || o < 0 {
			return 0, 0, apperr.Validation("offset must be a non-negative integer")
		}
		offset = o
	}
	return
}
