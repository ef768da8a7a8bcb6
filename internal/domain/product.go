package domain

import "time"

// Product types. The type selects which fulfillment handler governs the
// product and never changes after creation.
const (
	ProductTypeNormal    = "NORMAL"
	ProductTypeSeasonal  = "SEASONAL"
	ProductTypeExpirable = "EXPIRABLE"
)

// ProductTypes lists every known product type.
var ProductTypes = []string{ProductTypeNormal, ProductTypeSeasonal, ProductTypeExpirable}

// ValidProductType reports whether t is a known product type.
func ValidProductType(t string) bool {
	for _, pt := range ProductTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Product represents one inventory item subject to fulfillment policy.
// Only Available and LeadTime are mutated by the fulfillment core.
type Product struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"index;size:200" json:"name"`
	Type            string     `gorm:"size:32;index" json:"type"`
	Available       int        `gorm:"default:0" json:"available"` // stock count, never below zero
	LeadTime        int        `gorm:"default:0" json:"lead_time"` // days until restock
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`      // EXPIRABLE only, nil means never expires
	SeasonStartDate *time.Time `json:"season_start_date,omitempty"`
	SeasonEndDate   *time.Time `json:"season_end_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
