package trip

import (
	"time"
)

// Trip is a user's itinerary. Days, activities and bookings hang off it.
type Trip struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Destination string    `gorm:"type:varchar(255)" json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `gorm:"type:varchar(20);default:planning" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}

type Day struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    uint      `gorm:"not null;index" json:"trip_id"`
	DayNumber int       `gorm:"not null" json:"day_number"`
	Date      time.Time `json:"date"`
	Notes     string    `gorm:"type:text" json:"notes"`
}

func (Day) TableName() string {
	return "trip_days"
}

type Activity struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    uint       `gorm:"not null;index" json:"trip_id"`
	TripDayID *uint      `gorm:"index" json:"trip_day_id,omitempty"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	Location  string     `gorm:"type:varchar(255)" json:"location"`
}

func (Activity) TableName() string {
	return "trip_activities"
}

// Booking links a trip to a flight or hotel booking reference.
type Booking struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID      uint      `gorm:"not null;index" json:"trip_id"`
	BookingType string    `gorm:"type:varchar(20);not null" json:"booking_type"`
	BookingID   uint      `gorm:"not null" json:"booking_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Booking) TableName() string {
	return "trip_bookings"
}
