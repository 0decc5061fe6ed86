package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"benches/internal/apperr"
)

// Health godoc
// @Summary Проверка состояния сервиса
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		down := func(msg string) {
			e := apperr.New(http.StatusServiceUnavailable, apperr.Unknown, msg)
			c.JSON(e.Status, e.Response())
		}
		sqlDB, err := db.DB()
		if err != nil {
			down("db error")
			return
		}
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			down("db down")
			return
		}
		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				down("redis down")
				return
			}
		}
		c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
	}
}
