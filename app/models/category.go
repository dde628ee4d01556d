package models

import (
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProviderCategory is the join table between providers and categories
type ProviderCategory struct {
	ProviderID uint `gorm:"primaryKey" json:"provider_id"`
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
}
