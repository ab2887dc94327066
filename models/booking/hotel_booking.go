package booking

import (
	"time"
)

// HotelBooking is a reserved hotel stay owned by a user.
type HotelBooking struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	HotelName string      `gorm:"type:varchar(255);not null" json:"hotel_name"`
	City      string      `gorm:"type:varchar(100);not null" json:"city"`
	CheckIn   time.Time   `gorm:"not null" json:"check_in"`
	CheckOut  time.Time   `gorm:"not null" json:"check_out"`
	Guests    int         `gorm:"type:int;default:1" json:"guests"`
	Price     float64     `gorm:"type:numeric(12,2);not null" json:"price"`
	Status    HotelStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HotelBooking) TableName() string {
	return "hotel_bookings"
}
