package domain

import "time"

// Order groups products for batch fulfillment processing. It carries no
// mutable state of its own.
type Order struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Products  []Product `gorm:"many2many:order_products;" json:"products"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
