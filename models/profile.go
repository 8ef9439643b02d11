package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the contact details collected at signup. Its primary key is
// the user id issued by the identity provider, so a profile follows its user
// for the lifetime of the account.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"not null" json:"email"`
	FullName    string    `gorm:"not null" json:"full_name"`
	Phone       string    `gorm:"not null" json:"phone"`
	DiscordID   string    `gorm:"not null;default:''" json:"discord_id"`
	InstagramID string    `gorm:"not null;default:''" json:"instagram_id"`
	LinkedinID  string    `gorm:"not null;default:''" json:"linkedin_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
