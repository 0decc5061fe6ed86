package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"benches/internal/apperr"
	"benches/internal/feed"
	"benches/internal/models"
	"benches/internal/services"
	"benches/internal/utils"
)

// MaxPhotoSize — максимальный размер фотографии лавочки
const MaxPhotoSize = 10 << 20

var allowedPhotoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// BenchCreate — данные новой лавочки
type BenchCreate struct {
	Name        string   `json:"name" binding:"required,max=36"`
	Description *string  `json:"description" binding:"omitempty,max=512"`
	Count       *int     `json:"count" binding:"omitempty,min=1"`
	Latitude    *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

// ListBenches godoc
// @Summary Список лавочек
// @Description Страницы кешируются в Redis
// @Tags benches
// @Produce json
// @Param limit query int false "1..100, по умолчанию 10"
// @Param offset query int false "смещение, по умолчанию 0"
// @Success 200 {array} models.Bench
// @Failure 400 {object} ErrorResponse
// @Router /benches [get]
func ListBenches(db *gorm.DB, cache *services.BenchCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, err := parsePagination(c)
		if err != nil {
			abort(c, err)
			return
		}
		ctx := c.Request.Context()
		cacheable := false
		var gen int64
		if cache != nil {
			page, g, ok, err := cache.GetPage(ctx, limit, offset)
			switch {
			case err != nil:
				log.Printf("[CACHE] get page: %v", err)
			case ok:
				c.JSON(http.StatusOK, page)
				return
			default:
				cacheable, gen = true, g
			}
		}
		benches, err := services.ListBenches(ctx, db, limit, offset)
		if err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		if cacheable {
			if err := cache.SetPage(ctx, gen, limit, offset, benches); err != nil {
				log.Printf("[CACHE] set page: %v", err)
			}
		}
		c.JSON(http.StatusOK, benches)
	}
}

// GetBench godoc
// @Summary Лавочка по id
// @Tags benches
// @Produce json
// @Param id path int true "id лавочки"
// @Success 200 {object} models.Bench
// @Failure 404 {object} ErrorResponse
// @Router /benches/{id} [get]
func GetBench(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			abort(c, apperr.NotFoundf("Bench not found"))
			return
		}
		b, err := services.GetBench(c.Request.Context(), db, uint(id))
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// NearestBench godoc
// @Summary Ближайшая лавочка
// @Tags benches
// @Produce json
// @Param latitude query number true "широта"
// @Param longitude query number true "долгота"
// @Success 200 {object} models.Bench
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /nearest_bench/ [get]
func NearestBench(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			abort(c, apperr.Validation("latitude must be a number"))
			return
		}
		lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			abort(c, apperr.Validation("longitude must be a number"))
			return
		}
		b, err := services.NearestBench(c.Request.Context(), db, lat, lon)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// CreateBench godoc
// @Summary Создание лавочки
// @Tags benches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body BenchCreate true "данные лавочки"
// @Success 200 {object} models.Bench
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /create_bench [post]
func CreateBench(db *gorm.DB, cache *services.BenchCache, hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r BenchCreate
		if err := c.ShouldBindJSON(&r); err != nil {
			abort(c, bindError(err))
			return
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			abort(c, apperr.Validation("name must not be empty"))
			return
		}
		count := 1
		if r.Count != nil {
			count = *r.Count
		}
		b := models.Bench{
			Name:        name,
			Description: r.Description,
			Count:       count,
			Latitude:    *r.Latitude,
			Longitude:   *r.Longitude,
			CreatorID:   currentUser(c).ID,
		}
		if err := db.WithContext(c.Request.Context()).Create(&b).Error; err != nil {
			abort(c, apperr.Wrap(http.StatusBadRequest, apperr.ValidationError, "could not create bench", err))
			return
		}
		invalidate(c, cache)
		hub.Publish(feed.EventCreated, b)
		c.JSON(http.StatusOK, b)
	}
}

// DeleteBench godoc
// @Summary Удаление своих лавочек по имени
// @Tags benches
// @Security BearerAuth
// @Produce json
// @Param bench_name query string true "имя лавочки"
// @Success 200 {object} DetailResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /delete_bench [delete]
func DeleteBench(db *gorm.DB, cache *services.BenchCache, hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Query("bench_name")
		user := currentUser(c)
		var benches []models.Bench
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("name = ? AND creator_id = ?", name, user.ID).Find(&benches).Error; err != nil {
				return err
			}
			if len(benches) == 0 {
				return nil
			}
			return tx.Where("name = ? AND creator_id = ?", name, user.ID).Delete(&models.Bench{}).Error
		})
		if err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		if len(benches) == 0 {
			abort(c, apperr.NotFoundf("Bench not found or you aren't creator!"))
			return
		}
		invalidate(c, cache)
		for _, b := range benches {
			hub.Publish(feed.EventDeleted, b)
		}
		c.JSON(http.StatusOK, DetailResponse{StatusCode: "200", Detail: fmt.Sprintf("Bench %s deleted", name)})
	}
}

// UploadBenchPhoto godoc
// @Summary Загрузка фотографии лавочки
// @Description Файл принимается сразу, загрузка в хранилище идёт в фоне; photo_url обновится после неё
// @Tags benches
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "id лавочки"
// @Param file formData file true "jpeg, png или webp до 10 МБ"
// @Success 202 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /upload_bench_photo/{id} [post]
func UploadBenchPhoto(db *gorm.DB, uploader *services.PhotoUploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		notFound := apperr.NotFoundf("Bench not found or you aren't creator!")
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			abort(c, notFound)
			return
		}
		var bench models.Bench
		if err := db.WithContext(c.Request.Context()).
			Where("id = ? AND creator_id = ?", id, currentUser(c).ID).
			First(&bench).Error; err != nil {
			abort(c, notFound)
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			abort(c, apperr.Validation("file is required"))
			return
		}
		if file.Size > MaxPhotoSize {
			abort(c, apperr.Validation("file is too large"))
			return
		}
		f, err := file.Open()
		if err != nil {
			abort(c, apperr.Validation("invalid file"))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, MaxPhotoSize+1))
		if err != nil {
			abort(c, apperr.Validation("invalid file"))
			return
		}
		if len(data) > MaxPhotoSize {
			abort(c, apperr.Validation("file is too large"))
			return
		}
		mimeType := http.DetectContentType(data)
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if allowed, ok := allowedPhotoTypes[ext]; !ok || allowed != mimeType {
			abort(c, apperr.Validation("unsupported file type"))
			return
		}
		objectName, err := utils.ObjectName(fmt.Sprintf("benches/%d", bench.ID), ext)
		if err != nil {
			abort(c, apperr.Internal(err))
			return
		}
		job := services.PhotoJob{BenchID: bench.ID, ObjectName: objectName, ContentType: mimeType, Data: data}
		if err := uploader.Submit(job); err != nil {
			abort(c, apperr.Wrap(http.StatusServiceUnavailable, apperr.UploadFailed, "Upload queue is full, try again later", err))
			return
		}
		c.JSON(http.StatusAccepted, StatusResponse{Status: "accepted"})
	}
}

// BenchesWS godoc
// @Summary Websocket ленты лавочек
// @Description События created, deleted и photo со снимком лавочки
// @Tags benches
// @Success 101 {object} feed.Event "Switching Protocols"
// @Router /ws/benches [get]
func BenchesWS(hub *feed.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.Add(conn)
		defer func() {
			hub.Remove(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
