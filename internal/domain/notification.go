package domain

import "time"

// Notification kinds recorded in the audit trail.
const (
	NotifyKindDelay      = "delay"
	NotifyKindOutOfStock = "out_of_stock"
	NotifyKindExpiration = "expiration"
)

// NotificationRecord is the audit trail row written for every customer
// notification dispatched by the service.
type NotificationRecord struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind        string     `gorm:"size:32;index" json:"kind"`
	ProductName string     `gorm:"size:200;index" json:"product_name"`
	LeadTime    int        `gorm:"default:0" json:"lead_time"` // delay notifications only
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`      // expiration notifications only
	CreatedAt   time.Time  `json:"created_at"`
}
