package booking

import (
	"time"
)

// FlightBooking is a reserved flight segment owned by a user.
type FlightBooking struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	FlightNumber string       `gorm:"type:varchar(20);not null" json:"flight_number"`
	Airline      string       `gorm:"type:varchar(100)" json:"airline"`
	Origin       string       `gorm:"type:varchar(10);not null" json:"origin"`
	Destination  string       `gorm:"type:varchar(10);not null" json:"destination"`
	DepartureAt  time.Time    `gorm:"not null" json:"departure_at"`
	Passengers   int          `gorm:"type:int;default:1" json:"passengers"`
	Price        float64      `gorm:"type:numeric(12,2);not null" json:"price"`
	Status       FlightStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FlightBooking) TableName() string {
	return "flight_bookings"
}
