package approval

import (
	"errors"
	"fmt"

	approvalModel "travel-booking/models/approval"
	"travel-booking/models/booking"
	"travel-booking/services/transaction"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FlightBookingID uint
	HotelBookingID  uint
)

// Target describes the booking behind a reference after it has been locked.
type Target struct {
	OwnerID uint
	// Label is "Flight" or "Hotel".
	Label   string
	Summary string
	Link    string
}

// BookingRef is a reference to one of the booking tables. FlightRef and HotelRef
// are the only variants.
type BookingRef interface {
	Type() approvalModel.BookingType
	Key() uint
	// Lock reads the booking row FOR UPDATE.
	Lock(tx *gorm.DB) (Target, error)
	// SetStatus applies an approval decision to the booking row.
	SetStatus(tx *gorm.DB, decision approvalModel.Status) (Target, error)
}

// NewRef builds the variant for bookingType.
func NewRef(bookingType approvalModel.BookingType, bookingID uint) (BookingRef, error) {
	switch bookingType {
	case approvalModel.BookingTypeFlight:
		return FlightRef{ID: FlightBookingID(bookingID)}, nil
	case approvalModel.BookingTypeHotel:
		return HotelRef{ID: HotelBookingID(bookingID)}, nil
	}
	return nil, fmt.Errorf("unsupported booking type %q", bookingType)
}

// RefFor returns the booking reference an approval points to.
func RefFor(a *approvalModel.BookingApproval) (BookingRef, error) {
	return NewRef(a.BookingType, a.BookingID)
}

// bookingStatusFor maps a decision to the booking state it puts the booking in.
func bookingStatusFor(decision approvalModel.Status) (booking.Status, error) {
	switch decision {
	case approvalModel.StatusApproved:
		return booking.StatusConfirmed, nil
	case approvalModel.StatusRejected:
		return booking.StatusCancelled, nil
	}
	return booking.StatusUnknown, fmt.Errorf("%s is not a decision", decision)
}

func lockRow(tx *gorm.DB, dest interface{}, id uint, label string) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transaction.Errorf(transaction.KindNotFound, "%s booking %d not found", label, id)
	}
	return err
}

type FlightRef struct {
	ID FlightBookingID
}

func (r FlightRef) Type() approvalModel.BookingType { return approvalModel.BookingTypeFlight }
func (r FlightRef) Key() uint                       { return uint(r.ID) }

func (r FlightRef) Lock(tx *gorm.DB) (Target, error) {
	var fb booking.FlightBooking
	if err := lockRow(tx, &fb, uint(r.ID), "flight"); err != nil {
		return Target{}, err
	}
	return flightTarget(&fb), nil
}

func (r FlightRef) SetStatus(tx *gorm.DB, decision approvalModel.Status) (Target, error) {
	s, err := bookingStatusFor(decision)
	if err != nil {
		return Target{}, err
	}
	wire, err := booking.FlightStatusOf(s)
	if err != nil {
		return Target{}, err
	}

	var fb booking.FlightBooking
	if err := lockRow(tx, &fb, uint(r.ID), "flight"); err != nil {
		return Target{}, err
	}
	if err := tx.Model(&fb).Update("status", wire).Error; err != nil {
		return Target{}, err
	}
	return flightTarget(&fb), nil
}

func flightTarget(fb *booking.FlightBooking) Target {
	return Target{
		OwnerID: fb.UserID,
		Label:   "Flight",
		Summary: fmt.Sprintf("flight %s from %s to %s on %s", fb.FlightNumber, fb.Origin, fb.Destination, fb.DepartureAt.Format("02 Jan 2006")),
		Link:    fmt.Sprintf("/bookings/flights/%d", fb.ID),
	}
}

type HotelRef struct {
	ID HotelBookingID
}

func (r HotelRef) Type() approvalModel.BookingType { return approvalModel.BookingTypeHotel }
func (r HotelRef) Key() uint                       { return uint(r.ID) }

func (r HotelRef) Lock(tx *gorm.DB) (Target, error) {
	var hb booking.HotelBooking
	if err := lockRow(tx, &hb, uint(r.ID), "hotel"); err != nil {
		return Target{}, err
	}
	return hotelTarget(&hb), nil
}

func (r HotelRef) SetStatus(tx *gorm.DB, decision approvalModel.Status) (Target, error) {
	s, err := bookingStatusFor(decision)
	if err != nil {
		return Target{}, err
	}
	wire, err := booking.HotelStatusOf(s)
	if err != nil {
		return Target{}, err
	}

	var hb booking.HotelBooking
	if err := lockRow(tx, &hb, uint(r.ID), "hotel"); err != nil {
		return Target{}, err
	}
	if err := tx.Model(&hb).Update("status", wire).Error; err != nil {
		return Target{}, err
	}
	return hotelTarget(&hb), nil
}

func hotelTarget(hb *booking.HotelBooking) Target {
	return Target{
		OwnerID: hb.UserID,
		Label:   "Hotel",
		Summary: fmt.Sprintf("stay at %s, %s from %s to %s", hb.HotelName, hb.City, hb.CheckIn.Format("02 Jan 2006"), hb.CheckOut.Format("02 Jan 2006")),
		Link:    fmt.Sprintf("/bookings/hotels/%d", hb.ID),
	}
}
