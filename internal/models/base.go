package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Published carries the publication flag and creation timestamp shared by
// locations, categories and posts.
type Published struct {
	// IsPublished has no gorm default so that an explicit false survives Create.
	IsPublished bool      `json:"is_published" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index"`
}

// UUIDBase is used by entities addressed by an opaque id rather than a URL pk.
type UUIDBase struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
