package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing is a marketplace item. Listings are not linked to accounts.
type Listing struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"not null" json:"description"`
	Category      string    `gorm:"not null;index" json:"category"`
	Price         float64   `gorm:"not null" json:"price"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	SellerEmail   string    `gorm:"column:seller_email;not null" json:"seller_email"`
	SellerContact string    `gorm:"column:seller_contact;not null" json:"seller_contact"`
	SellerName    string    `gorm:"column:seller_name;not null" json:"seller_name"`
	Images        []string  `gorm:"type:jsonb;serializer:json" json:"images"`
	Tags          []string  `gorm:"type:jsonb;serializer:json" json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "marketplace_items"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Quantity == 0 {
		l.Quantity = 1
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	return
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type MarketplaceAnalytics struct {
	TotalItems        int64           `json:"totalItems"`
	TotalValue        float64         `json:"totalValue"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
}
