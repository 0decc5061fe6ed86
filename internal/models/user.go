package models

import "time"

// User — зарегистрированный пользователь приложения
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"type:varchar(128);not null;unique" json:"email"`
	Username         string    `gorm:"type:varchar(32);not null;unique" json:"username"`
	TelegramUsername *string   `gorm:"type:varchar(64);unique" json:"telegram_username"`
	HashedPassword   string    `gorm:"type:varchar(1024);not null" json:"-"`
	RegisteredAt     time.Time `gorm:"autoCreateTime" json:"registered_at"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser      bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsVerified       bool      `gorm:"not null;default:false" json:"is_verified"`
	Benches          []Bench   `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
}
