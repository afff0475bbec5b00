// internal/domain/store/entity.go
package store

import (
	"time"
)

// StoreProfile is the merchant's public storefront identity: the name,
// description and imagery customers see, plus the share slug the public
// link is built from.
type StoreProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;uniqueIndex" json:"owner_id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Slug        string    `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	LogoURL     string    `gorm:"size:500" json:"logo_url"`
	CoverURL    string    `gorm:"size:500" json:"cover_url"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Address     string    `gorm:"size:500" json:"address"`
	Currency    string    `gorm:"size:3;default:'USD'" json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides
func (StoreProfile) TableName() string { return "store_profiles" }
