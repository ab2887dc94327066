package log

import (
	"time"
)

// AdminLog is an immutable audit row. One is written per administrative mutation.
type AdminLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID    uint      `gorm:"not null;index" json:"admin_id"`
	Action     string    `gorm:"type:varchar(100);not null" json:"action"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_admin_logs_entity,priority:1" json:"entity_type"`
	EntityID   uint      `gorm:"not null;index:idx_admin_logs_entity,priority:2" json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}
