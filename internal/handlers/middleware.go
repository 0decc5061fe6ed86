package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benches/internal/apperr"
	"benches/internal/auth"
	"benches/internal/models"
)

const userKey = "user"

// Require — требования к текущему пользователю
type Require struct {
	Active    bool
	Verified  bool
	Superuser bool
}

// CurrentUser загружает пользователя по токену из cookie или заголовка Authorization
func CurrentUser(m *auth.Manager, tr auth.CookieTransport, req Require) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tr.Token(c)
		if token == "" {
			abort(c, apperr.New(http.StatusUnauthorized, apperr.Unauthorized, "Unauthorized"))
			return
		}
		user, err := m.UserFromToken(c.Request.Context(), token)
		if err != nil {
			abort(c, apperr.New(http.StatusUnauthorized, apperr.Unauthorized, "Unauthorized"))
			return
		}
		if req.Active && !user.IsActive {
			abort(c, apperr.New(http.StatusUnauthorized, apperr.Unauthorized, "Unauthorized"))
			return
		}
		if (req.Verified && !user.IsVerified) || (req.Superuser && !user.IsSuperuser) {
			abort(c, apperr.New(http.StatusForbidden, apperr.Forbidden, "Forbidden"))
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
