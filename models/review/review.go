package review

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	TargetType string    `gorm:"type:varchar(20);not null" json:"target_type"`
	TargetID   string    `gorm:"type:varchar(255);not null" json:"target_id"`
	Rating     int       `gorm:"type:int;not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
