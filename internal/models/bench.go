package models

// Bench — лавочка с координатами, созданная пользователем
type Bench struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(36);not null;index" json:"name"`
	Description *string `gorm:"type:varchar(512)" json:"description"`
	Count       int     `gorm:"not null;default:1" json:"count"`
	Latitude    float64 `gorm:"not null" json:"latitude"`
	Longitude   float64 `gorm:"not null" json:"longitude"`
	PhotoURL    *string `gorm:"type:varchar(1024)" json:"photo_url"`
	CreatorID   uint    `gorm:"not null;index" json:"creator_id"`
}
