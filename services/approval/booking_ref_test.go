package approval

import (
	"testing"

	approvalModel "travel-booking/models/approval"
	"travel-booking/models/booking"
)

func TestNewRef(t *testing.T) {
	ref, err := NewRef(approvalModel.BookingTypeFlight, 12)
	if err != nil {
		t.Fatalf("NewRef(FLIGHT) error = %v", err)
	}
	if fr, ok := ref.(FlightRef); !ok || fr.ID != 12 {
		t.Errorf("NewRef(FLIGHT) = %#v, want FlightRef{ID: 12}", ref)
	}

	ref, err = NewRef(approvalModel.BookingTypeHotel, 7)
	if err != nil {
		t.Fatalf("NewRef(HOTEL) error = %v", err)
	}
	if hr, ok := ref.(HotelRef); !ok || hr.ID != 7 {
		t.Errorf("NewRef(HOTEL) = %#v, want HotelRef{ID: 7}", ref)
	}
	if ref.Type() != approvalModel.BookingTypeHotel || ref.Key() != 7 {
		t.Errorf("HotelRef Type/Key = %s/%d", ref.Type(), ref.Key())
	}

	if _, err := NewRef("TRAIN", 1); err == nil {
		t.Error("NewRef(TRAIN) expected error")
	}
}

func TestBookingStatusFor(t *testing.T) {
	tests := []struct {
		decision approvalModel.Status
		want     booking.Status
		wantErr  bool
	}{
		{approvalModel.StatusApproved, booking.StatusConfirmed, false},
		{approvalModel.StatusRejected, booking.StatusCancelled, false},
		{approvalModel.StatusPending, booking.StatusUnknown, true},
		{"MAYBE", booking.StatusUnknown, true},
	}
	for _, tt := range tests {
		got, err := bookingStatusFor(tt.decision)
		if (err != nil) != tt.wantErr {
			t.Errorf("bookingStatusFor(%s) error = %v, wantErr %v", tt.decision, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("bookingStatusFor(%s) = %s, want %s", tt.decision, got, tt.want)
		}
	}
}
