package testdb

import (
	"fmt"
	"testing"
	"time"

	"travel-booking/models/approval"
	"travel-booking/models/booking"
	"travel-booking/models/user"

	"gorm.io/gorm"
)

// CreateUser inserts a user with a unique username.
func CreateUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := &user.User{
		Uuid:      fmt.Sprintf("uuid-%s-%d", username, time.Now().UnixNano()),
		Username:  username,
		LegalName: "Test " + username,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return u
}

// CreateFlightBooking inserts a pending flight booking for userID.
func CreateFlightBooking(t *testing.T, db *gorm.DB, userID uint) *booking.FlightBooking {
	t.Helper()
	fb := &booking.FlightBooking{
		UserID:       userID,
		FlightNumber: "TK1980",
		Airline:      "Turkish Airlines",
		Origin:       "IST",
		Destination:  "LHR",
		DepartureAt:  time.Now().Add(72 * time.Hour),
		Passengers:   1,
		Price:        420.50,
		Status:       booking.FlightStatusPending,
	}
	if err := db.Create(fb).Error; err != nil {
		t.Fatalf("Failed to create flight booking: %v", err)
	}
	return fb
}

// CreateHotelBooking inserts a pending hotel booking for userID.
func CreateHotelBooking(t *testing.T, db *gorm.DB, userID uint) *booking.HotelBooking {
	t.Helper()
	hb := &booking.HotelBooking{
		UserID:    userID,
		HotelName: "Hotel Lisboa",
		City:      "Lisbon",
		CheckIn:   time.Now().Add(24 * time.Hour),
		CheckOut:  time.Now().Add(96 * time.Hour),
		Guests:    2,
		Price:     610,
		Status:    booking.HotelStatusPending,
	}
	if err := db.Create(hb).Error; err != nil {
		t.Fatalf("Failed to create hotel booking: %v", err)
	}
	return hb
}

// CreateApproval inserts a PENDING approval for the given booking.
func CreateApproval(t *testing.T, db *gorm.DB, bt approval.BookingType, bookingID uint) *approval.BookingApproval {
	t.Helper()
	a := &approval.BookingApproval{
		BookingType: bt,
		BookingID:   bookingID,
		Status:      approval.StatusPending,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("Failed to create approval: %v", err)
	}
	return a
}
