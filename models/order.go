package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values. Orders are always created as pending; later
// transitions happen outside this system and are only observed here.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in-progress"
	OrderStatusCompleted  = "completed"
)

// Badge variants for rendering an order status.
const (
	BadgeSuccess = "success"
	BadgeWarning = "warning"
	BadgeInfo    = "info"
	BadgeDefault = "default"
)

// Order represents a client's order for a catalog service
type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID       uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	Service         Service   `gorm:"foreignKey:ServiceID" json:"service"`
	Status          string    `gorm:"not null;default:'pending';index" json:"status"`
	Details         string    `gorm:"type:text" json:"details"`
	TotalAmount     float64   `gorm:"not null" json:"total_amount"` // fixed at creation, never recomputed
	IncludeLifetime bool      `gorm:"not null;default:false" json:"include_lifetime"`
	DeliveryLink    *string   `json:"delivery_link"` // set externally once the order completes
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key when one was not provided
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// StatusBadge maps an order status to its display treatment. Unknown
// statuses fall back to the default badge so future statuses render
// instead of erroring.
func StatusBadge(status string) string {
	switch status {
	case OrderStatusCompleted:
		return BadgeSuccess
	case OrderStatusPending:
		return BadgeWarning
	case OrderStatusInProgress:
		return BadgeInfo
	default:
		return BadgeDefault
	}
}
