package search

import (
	"time"
)

// FlightSearch is a saved flight query for a user.
type FlightSearch struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Origin        string     `gorm:"type:varchar(10);not null" json:"origin"`
	Destination   string     `gorm:"type:varchar(10);not null" json:"destination"`
	DepartureDate time.Time  `gorm:"not null" json:"departure_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Adults        int        `gorm:"default:1" json:"adults"`
	CabinClass    string     `gorm:"type:varchar(20)" json:"cabin_class"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (FlightSearch) TableName() string {
	return "flight_searches"
}

// HotelSearch is a saved hotel query for a user.
type HotelSearch struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	City      string    `gorm:"type:varchar(100);not null" json:"city"`
	CheckIn   time.Time `gorm:"not null" json:"check_in"`
	CheckOut  time.Time `gorm:"not null" json:"check_out"`
	Guests    int       `gorm:"default:1" json:"guests"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (HotelSearch) TableName() string {
	return "hotel_searches"
}

// Analytics records one search event for reporting.
type Analytics struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	SearchType  string    `gorm:"type:varchar(20);not null" json:"search_type"`
	Query       string    `gorm:"type:text" json:"query"`
	ResultCount int       `gorm:"default:0" json:"result_count"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Analytics) TableName() string {
	return "search_analytics"
}
