package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LIFECYCLE_ACTIVE   = "ACTIVE"
	LIFECYCLE_INACTIVE = "INACTIVE"
	LIFECYCLE_ARCHIVED = "ARCHIVED"

	AVAILABILITY_OPEN_NOW        = "OPEN_NOW"
	AVAILABILITY_BUSY_LIMITED    = "BUSY_LIMITED"
	AVAILABILITY_NOT_TAKING_WORK = "NOT_TAKING_WORK"

	PLAN_FREE    = "FREE"
	PLAN_PREMIUM = "PREMIUM"

	PLAN_SOURCE_FREE  = "FREE"
	PLAN_SOURCE_TRIAL = "TRIAL"
	PLAN_SOURCE_ADMIN = "ADMIN"

	ISLAND_STT = "STT"
	ISLAND_STX = "STX"
	ISLAND_STJ = "STJ"
)

type Provider struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UUID                string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Name                string     `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Phone               string     `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Description         string     `gorm:"type:text" json:"description" validate:"max=2000"`
	Island              string     `gorm:"type:varchar(3);index" json:"island" validate:"required,oneof=STT STX STJ"`
	LifecycleStatus     string     `gorm:"type:varchar(20);default:'ACTIVE';index" json:"lifecycle_status" validate:"oneof=ACTIVE INACTIVE ARCHIVED"`
	AvailabilityStatus  string     `gorm:"type:varchar(20);default:'OPEN_NOW'" json:"availability_status" validate:"oneof=OPEN_NOW BUSY_LIMITED NOT_TAKING_WORK"`
	StatusLastUpdatedAt time.Time  `gorm:"type:timestamp;not null;index" json:"status_last_updated_at"`
	Plan                string     `gorm:"type:varchar(20);default:'FREE'" json:"plan" validate:"oneof=FREE PREMIUM"`
	PlanSource          string     `gorm:"type:varchar(20);default:'FREE'" json:"plan_source" validate:"oneof=FREE TRIAL ADMIN"`
	TrialEndAt          *time.Time `gorm:"type:timestamp;default:null" json:"trial_end_at"`
	// relations
	Badges       []Badge       `gorm:"foreignKey:ProviderID" json:"badges,omitempty"`
	Categories   []Category    `gorm:"many2many:provider_categories;" json:"categories,omitempty"`
	ServiceAreas []ServiceArea `gorm:"many2many:provider_service_areas;" json:"service_areas,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Provider) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate assigns a public UUID and seeds the status timestamp.
func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	if p.StatusLastUpdatedAt.IsZero() {
		p.StatusLastUpdatedAt = time.Now()
	}
	return nil
}

// IsArchived reports whether the provider is excluded from the public listing.
func (p *Provider) IsArchived() bool {
	return p.LifecycleStatus == LIFECYCLE_ARCHIVED
}

// IsLifecycleActive reports whether the provider is in the ACTIVE lifecycle state.
func (p *Provider) IsLifecycleActive() bool {
	return p.LifecycleStatus == LIFECYCLE_ACTIVE
}

// TouchStatus records a lifecycle/availability/badge-affecting change.
func (p *Provider) TouchStatus(now time.Time) {
	p.StatusLastUpdatedAt = now
}
