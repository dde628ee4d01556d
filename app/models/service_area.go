package models

import (
	"time"
)

type ServiceArea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Island    string    `gorm:"type:varchar(3);index" json:"island"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProviderServiceArea is the join table between providers and service areas
type ProviderServiceArea struct {
	ProviderID    uint `gorm:"primaryKey" json:"provider_id"`
	ServiceAreaID uint `gorm:"primaryKey" json:"service_area_id"`
}
