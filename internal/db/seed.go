package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"benches/internal/auth"
	"benches/internal/models"
)

// SeedSuperuser создаёт суперпользователя или выдаёт права существующему
func SeedSuperuser(db *gorm.DB, email, username, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("superuser email and password are required")
	}
	var u models.User
	err := db.Where("email = ?", email).First(&u).Error
	if err == nil {
		if err := db.Model(&u).Updates(map[string]any{"is_superuser": true, "is_active": true, "is_verified": true}).Error; err != nil {
			return nil, err
		}
		u.IsSuperuser, u.IsActive, u.IsVerified = true, true, true
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u = models.User{
		Email:          email,
		Username:       username,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    true,
		IsVerified:     true,
	}
	if err := db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SeedBenches добавляет демонстрационные лавочки, если таблица пуста.
func SeedBenches(db *gorm.DB, creatorID uint) error {
	var count int64
	if err := db.Model(&models.Bench{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	desc := func(s string) *string { return &s }
	benches := []models.Bench{
		{Name: "Парк Горького", Description: desc("У фонтана"), Count: 4, Latitude: 55.7298, Longitude: 37.6036},
		{Name: "Патриаршие пруды", Description: desc("Вдоль пруда"), Count: 6, Latitude: 55.7637, Longitude: 37.5926},
		{Name: "Воробьёвы горы", Count: 2, Latitude: 55.7108, Longitude: 37.5427},
		{Name: "Летний сад", Description: desc("Главная аллея"), Count: 8, Latitude: 59.9449, Longitude: 30.3360},
	}
	for i := range benches {
		benches[i].CreatorID = creatorID
	}
	return db.Create(&benches).Error
}
