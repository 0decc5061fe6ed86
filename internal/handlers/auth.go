package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benches/internal/apperr"
	"benches/internal/auth"
)

// Общие структуры запросов и ответов для Swagger и тестов

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=3"`
}

type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и ставит в очередь письмо для подтверждения email
// @Tags auth
// @Accept json
// @Produce json
// @Param input body auth.UserCreate true "данные регистрации"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /auth/register [post]
func Register(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.UserCreate
		if err := c.ShouldBindJSON(&in); err != nil {
			abort(c, bindError(err))
			return
		}
		user, err := m.Create(c.Request.Context(), in)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// Login godoc
// @Summary Вход по email или имени пользователя
// @Description Ставит cookie с JWT и возвращает токен в теле ответа
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "email или имя пользователя"
// @Param password formData string true "пароль"
// @Success 200 {object} auth.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/jwt/login [post]
func Login(m *auth.Manager, tr auth.CookieTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		login := c.PostForm("username")
		password := c.PostForm("password")
		if login == "" || password == "" {
			abort(c, apperr.Validation("username and password are required"))
			return
		}
		user, err := m.Authenticate(c.Request.Context(), login, password)
		if err != nil {
			abort(c, err)
			return
		}
		token, err := m.IssueToken(user)
		if err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		tr.Login(c, token)
	}
}

// Logout godoc
// @Summary Выход
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /auth/jwt/logout [post]
func Logout(tr auth.CookieTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		tr.Logout(c)
	}
}

// TelegramLogin godoc
// @Summary Вход по Telegram username
// @Description Выдаёт токен пользователю с привязанным Telegram username
// @Tags auth
// @Produce json
// @Param telegram_username query string true "Telegram username"
// @Success 200 {object} auth.LoginResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/tg/login [post]
func TelegramLogin(m *auth.Manager, tr auth.CookieTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.GetByTelegram(c.Request.Context(), c.Query("telegram_username"))
		if err != nil {
			abort(c, err)
			return
		}
		if !user.IsActive {
			abort(c, apperr.NotFoundf("User not found"))
			return
		}
		token, err := m.IssueToken(user)
		if err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		tr.Login(c, token)
	}
}

// ForgotPassword godoc
// @Summary Запрос сброса пароля
// @Description Всегда отвечает 202, чтобы не раскрывать наличие пользователя
// @Tags auth
// @Accept json
// @Param input body EmailRequest true "email"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func ForgotPassword(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r EmailRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			abort(c, bindError(err))
			return
		}
		if err := m.ForgotPassword(c.Request.Context(), r.Email); err != nil {
			abort(c, err)
			return
		}
		c.Status(http.StatusAccepted)
	}
}

// ResetPassword godoc
// @Summary Сброс пароля по токену из письма
// @Tags auth
// @Accept json
// @Param input body ResetPasswordRequest true "токен и новый пароль"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /auth/reset-password [post]
func ResetPassword(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r ResetPasswordRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			abort(c, bindError(err))
			return
		}
		if err := m.ResetPassword(c.Request.Context(), r.Token, r.Password); err != nil {
			abort(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// RequestVerifyToken godoc
// @Summary Повторная отправка письма для подтверждения email
// @Tags auth
// @Accept json
// @Param input body EmailRequest true "email"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Router /auth/request-verify-token [post]
func RequestVerifyToken(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r EmailRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			abort(c, bindError(err))
			return
		}
		if err := m.RequestVerify(c.Request.Context(), r.Email); err != nil {
			abort(c, err)
			return
		}
		c.Status(http.StatusAccepted)
	}
}

// Verify godoc
// @Summary Подтверждение email
// @Tags auth
// @Accept json
// @Produce json
// @Param input body VerifyRequest true "токен из письма"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /auth/verify [post]
func Verify(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r VerifyRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			abort(c, bindError(err))
			return
		}
		verify(c, m, r.Token)
	}
}

// VerifyLink godoc
// @Summary Подтверждение email по ссылке из письма
// @Tags auth
// @Produce json
// @Param token query string true "токен из письма"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /auth/verify [get]
func VerifyLink(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		verify(c, m, c.Query("token"))
	}
}

func verify(c *gin.Context, m *auth.Manager, token string) {
	if token == "" {
		abort(c, apperr.Validation("token is required"))
		return
	}
	user, err := m.Verify(c.Request.Context(), token)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
