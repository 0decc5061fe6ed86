package services

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"benches/internal/apperr"
	"benches/internal/models"
)

// ValidateCoordinates проверяет диапазоны широты и долготы
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return apperr.Validation("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return apperr.Validation("longitude must be between -180 and 180")
	}
	return nil
}

// ListBenches возвращает страницу лавочек в порядке id
func ListBenches(ctx context.Context, db *gorm.DB, limit, offset int) ([]models.Bench, error) {
	benches := []models.Bench{}
	if err := db.WithContext(ctx).Order("id asc").Limit(limit).Offset(offset).Find(&benches).Error; err != nil {
		return nil, err
	}
	return benches, nil
}

// GetBench ищет лавочку по id
func GetBench(ctx context.Context, db *gorm.DB, id uint) (*models.Bench, error) {
	var b models.Bench
	if err := db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Bench not found")
		}
		return nil, apperr.Internal(err)
	}
	return &b, nil
}

// NearestBench ищет лавочку с минимальным (lat-φ)²+(lon-λ)².
// Расстояние евклидово в градусах, как и в исходном сервисе.
func NearestBench(ctx context.Context, db *gorm.DB, lat, lon float64) (*models.Bench, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	var b models.Bench
	err := db.WithContext(ctx).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "(latitude - ?) * (latitude - ?) + (longitude - ?) * (longitude - ?), id",
			Vars:               []any{lat, lat, lon, lon},
			WithoutParentheses: true,
		}}).
		Take(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(http.StatusNotFound, apperr.EmptyList, "No benches yet")
		}
		return nil, apperr.Internal(err)
	}
	return &b, nil
}
