package user

import "time"

// Setting stores per-user preferences. One row per user.
type Setting struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Currency           string    `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Language           string    `gorm:"type:varchar(10);default:'en'" json:"language"`
	EmailNotifications bool      `gorm:"default:true" json:"email_notifications"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "user_settings"
}
