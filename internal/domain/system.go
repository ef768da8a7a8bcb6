package domain

import "time"

// SysConfig stores runtime-tunable settings as category/name/value rows.
type SysConfig struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Sort      int       `gorm:"default:0" json:"sort"`
	Type      string    `gorm:"size:64;index" json:"type"`
	Name      string    `gorm:"size:128;index" json:"name"`
	Value     string    `gorm:"size:255" json:"value"`
	Remark    string    `gorm:"size:255" json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns table name
func (SysConfig) TableName() string {
	return "sys_config"
}
