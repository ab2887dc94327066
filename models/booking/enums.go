package booking

import (
	"fmt"
	"strings"
)

// Status is the canonical booking state shared by every booking entity.
// Each entity keeps its own on-disk spelling, see FlightStatus and HotelStatus.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusConfirmed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FlightStatus is the flight_bookings.status column. Values are lower case;
// older rows may carry any casing.
type FlightStatus string

const (
	FlightStatusPending   FlightStatus = "pending"
	FlightStatusConfirmed FlightStatus = "confirmed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

// FlightStatusOf returns the column value for s.
func FlightStatusOf(s Status) (FlightStatus, error) {
	switch s {
	case StatusPending:
		return FlightStatusPending, nil
	case StatusConfirmed:
		return FlightStatusConfirmed, nil
	case StatusCancelled:
		return FlightStatusCancelled, nil
	}
	return "", fmt.Errorf("no flight status for %s", s)
}

// Status parses the column value ignoring case.
func (fs FlightStatus) Status() Status {
	switch strings.ToLower(strings.TrimSpace(string(fs))) {
	case "pending":
		return StatusPending
	case "confirmed":
		return StatusConfirmed
	case "cancelled", "canceled":
		return StatusCancelled
	}
	return StatusUnknown
}

// HotelStatus is the hotel_bookings.status column. Values are upper case.
type HotelStatus string

const (
	HotelStatusPending   HotelStatus = "PENDING"
	HotelStatusConfirmed HotelStatus = "CONFIRMED"
	HotelStatusCancelled HotelStatus = "CANCELLED"
)

// HotelStatusOf returns the column value for s.
func HotelStatusOf(s Status) (HotelStatus, error) {
	switch s {
	case StatusPending:
		return HotelStatusPending, nil
	case StatusConfirmed:
		return HotelStatusConfirmed, nil
	case StatusCancelled:
		return HotelStatusCancelled, nil
	}
	return "", fmt.Errorf("no hotel status for %s", s)
}

func (hs HotelStatus) Status() Status {
	switch hs {
	case HotelStatusPending:
		return StatusPending
	case HotelStatusConfirmed:
		return StatusConfirmed
	case HotelStatusCancelled:
		return StatusCancelled
	}
	return StatusUnknown
}
