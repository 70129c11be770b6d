package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard audit timestamps
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Soft delete support
}

// BeforeCreate generates the UUID unless the caller already assigned one (seed data does).
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	base.EnsureID()
	return
}

// EnsureID assigns a fresh UUID when the record has none yet.
func (base *BaseModel) EnsureID() {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
}
