package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"benches/internal/apperr"
	"benches/internal/auth"
	"benches/internal/feed"
	"benches/internal/models"
	"benches/internal/services"
)

// ListUsers godoc
// @Summary Список пользователей
// @Tags users
// @Produce json
// @Param limit query int false "1..100, по умолчанию 10"
// @Param offset query int false "смещение, по умолчанию 0"
// @Success 200 {array} models.User
// @Failure 400 {object} ErrorResponse
// @Router /users [get]
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, err := parsePagination(c)
		if err != nil {
			abort(c, err)
			return
		}
		users := []models.User{}
		if err := db.WithContext(c.Request.Context()).Order("id asc").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// Me godoc
// @Summary Текущий пользователь
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /users/me [get]
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, currentUser(c))
	}
}

// UpdateMe godoc
// @Summary Изменение своего профиля
// @Description Флаги is_active, is_superuser и is_verified игнорируются
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body auth.UserUpdate true "изменяемые поля"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/me [patch]
func UpdateMe(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.UserUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			abort(c, bindError(err))
			return
		}
		user, err := m.Update(c.Request.Context(), currentUser(c), in, true)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func userFromParam(c *gin.Context, m *auth.Manager) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, apperr.NotFoundf("User not found"))
		return nil, false
	}
	user, err := m.Get(c.Request.Context(), uint(id))
	if err != nil {
		abort(c, err)
		return nil, false
	}
	return user, true
}

// GetUser godoc
// @Summary Пользователь по id
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "id пользователя"
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func GetUser(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromParam(c, m)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUser godoc
// @Summary Изменение пользователя администратором
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "id пользователя"
// @Param input body auth.UserUpdate true "изменяемые поля"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [patch]
func UpdateUser(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromParam(c, m)
		if !ok {
			return
		}
		var in auth.UserUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			abort(c, bindError(err))
			return
		}
		updated, err := m.Update(c.Request.Context(), user, in, false)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteUser godoc
// @Summary Удаление пользователя вместе с его лавочками
// @Tags users
// @Security BearerAuth
// @Param id path int true "id пользователя"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func DeleteUser(m *auth.Manager, cache *services.BenchCache, hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := userFromParam(c, m)
		if !ok {
			return
		}
		benches, err := m.Delete(c.Request.Context(), user)
		if err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		invalidate(c, cache)
		for _, b := range benches {
			hub.Publish(feed.EventDeleted, b)
		}
		c.Status(http.StatusNoContent)
	}
}

// LinkTelegram godoc
// @Summary Привязка Telegram username
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param tg_username query string true "Telegram username без @"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /link_tg [post]
func LinkTelegram(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.LinkTelegram(c.Request.Context(), currentUser(c), c.Query("tg_username")); err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, DetailResponse{StatusCode: "success", Detail: "Telegram username updated"})
	}
}

// invalidate сбрасывает кеш списка лавочек; ошибка Redis не ломает запрос
func invalidate(c *gin.Context, cache *services.BenchCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(c.Request.Context()); err != nil {
		log.Printf("[CACHE] invalidate: %v", err)
	}
}
