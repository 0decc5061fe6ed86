package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"benches/internal/utils"
)

// TaskFailure хранит задачу, исчерпавшую все попытки выполнения
type TaskFailure struct {
	ID        string         `gorm:"primaryKey;size:21" json:"id"`
	TaskID    string         `gorm:"size:21;not null;index" json:"task_id"`
	Name      string         `gorm:"type:varchar(128);not null" json:"name"`
	Payload   datatypes.JSON `gorm:"type:json" json:"payload" swaggertype:"object"`
	Attempts  int            `gorm:"not null" json:"attempts"`
	LastError string         `gorm:"type:text" json:"last_error"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (f *TaskFailure) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID, err = utils.GenerateNanoID()
	}
	return
}
