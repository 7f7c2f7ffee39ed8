package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if len(v.ID) == 0 {
		v.ID = uuid.NewString()
	}
	return nil
}

func (v BaseModel) GetID() string {
	return v.ID
}
