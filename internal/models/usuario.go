package models

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é quem acessa o sistema (dono ou funcionário da vidraçaria).
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome      string `gorm:"size:255;not null" json:"nome"`
	Email     string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	SenhaHash string `gorm:"not null" json:"-"`
	Admin     bool   `gorm:"default:false" json:"admin"`
}
