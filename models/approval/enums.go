package approval

import (
	"fmt"
	"strings"
)

type BookingType string

const (
	BookingTypeFlight BookingType = "FLIGHT"
	BookingTypeHotel  BookingType = "HOTEL"
)

func (bt BookingType) IsValid() bool {
	return bt == BookingTypeFlight || bt == BookingTypeHotel
}

// ParseBookingType accepts any casing.
func ParseBookingType(s string) (BookingType, error) {
	bt := BookingType(strings.ToUpper(strings.TrimSpace(s)))
	if !bt.IsValid() {
		return "", fmt.Errorf("unknown booking type %q", s)
	}
	return bt, nil
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once a decision has been recorded.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// IsDecision reports whether s may be the outcome of a decision.
func (s Status) IsDecision() bool {
	return s.IsTerminal()
}

// ParseStatus accepts any casing.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("unknown approval status %q", s)
	}
	return st, nil
}
