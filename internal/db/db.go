package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"benches/internal/models"
)

// NewDB открывает подключение к Postgres
func NewDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return db, nil
}

// Migrate создаёт и обновляет таблицы
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Bench{},
		&models.TaskFailure{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	migrator := db.Migrator()
	for _, field := range []string{"Name", "CreatorID"} {
		if migrator.HasIndex(&models.Bench{}, field) {
			continue
		}
		if err := migrator.CreateIndex(&models.Bench{}, field); err != nil {
			return fmt.Errorf("create index %s: %w", field, err)
		}
	}
	return nil
}
