package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"benches/internal/apperr"
)

// StatusResponse — простой ответ со статусом
type StatusResponse struct {
	Status string `json:"status"`
}

// DetailResponse — ответ вида {"status_code", "detail"}
type DetailResponse struct {
	StatusCode string `json:"status_code"`
	Detail     string `json:"detail"`
}

// ErrorResponse — тело ответа с ошибкой (для Swagger)
type ErrorResponse = apperr.Response

// abort прерывает обработку запроса; ответ формирует ErrorHandler
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindError превращает ошибку биндинга в VALIDATION_ERROR
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(fe.Field() + ": failed on '" + fe.Tag() + "'")
	}
	return apperr.Wrap(http.StatusBadRequest, apperr.ValidationError, "invalid request body", err)
}

// ErrorHandler отдаёт последнюю ошибку из c.Errors в формате {"error": {"code", "message"}}
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		e := apperr.From(c.Errors.Last().Err)
		if e.Status >= http.StatusInternalServerError {
			log.Printf("[API] %s %s: %v", c.Request.Method, c.Request.URL.Path, e)
		}
		c.JSON(e.Status, e.Response())
	}
}

// Recovery отвечает на панику так же, как на неизвестную ошибку
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Printf("[API] panic %s %s: %v", c.Request.Method, c.Request.URL.Path, rec)
		e := apperr.New(http.StatusInternalServerError, apperr.Unknown, "internal error")
		c.AbortWithStatusJSON(e.Status, e.Response())
	})
}
