package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginResponse — тело ответа при успешном входе
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// CookieTransport передаёт токен в cookie; заголовок Authorization принимается как запасной вариант
type CookieTransport struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func NewCookieTransport(maxAge time.Duration, secure bool) CookieTransport {
	return CookieTransport{Name: "token", MaxAge: maxAge, Secure: secure}
}

// Login ставит cookie и отдаёт токен в теле ответа
func (t CookieTransport) Login(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(t.Name, token, int(t.MaxAge.Seconds()), "/", "", t.Secure, true)
	c.JSON(http.StatusOK, LoginResponse{Token: token, TokenType: "bearer"})
}

// Logout стирает cookie
func (t CookieTransport) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(t.Name, "", -1, "/", "", t.Secure, true)
	c.Status(http.StatusNoContent)
}

// Token достаёт токен из cookie или из заголовка "Authorization: Bearer ..."
func (t CookieTransport) Token(c *gin.Context) string {
	if v, err := c.Cookie(t.Name); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
