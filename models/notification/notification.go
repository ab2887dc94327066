package notification

import (
	"time"
)

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeInfo, TypeWarning:
		return true
	default:
		return false
	}
}

// Notification is a user-facing message. A nil UserID is a broadcast to all users.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	AdminID   *uint     `gorm:"index" json:"admin_id,omitempty"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Type      Type      `gorm:"type:varchar(20);not null;default:info" json:"type"`
	Link      *string   `gorm:"type:varchar(2048)" json:"link,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
