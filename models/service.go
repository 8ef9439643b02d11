package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service represents a purchasable catalog item. The catalog is read-only
// from the portal's perspective; rows are managed by an administrator.
type Service struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"not null" json:"category"`
	Icon          string    `gorm:"not null" json:"icon"` // symbolic key, see ResolveIcon
	BasePrice     float64   `gorm:"not null" json:"base_price"`
	LifetimePrice *float64  `json:"lifetime_price"` // nullable, lifetime-updates tier
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// BeforeCreate assigns a UUID primary key when one was not provided
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
