package approval

import "time"

// BookingApproval gates a flight or hotel booking on an administrator's decision.
// BookingID points into flight_bookings or hotel_bookings depending on BookingType,
// so there is no foreign key on it. Rows are never deleted.
type BookingApproval struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingType BookingType `gorm:"type:varchar(20);not null;index:idx_booking_approvals_ref,priority:1" json:"booking_type"`
	BookingID   uint        `gorm:"not null;index:idx_booking_approvals_ref,priority:2" json:"booking_id"`
	Status      Status      `gorm:"type:varchar(20);not null;default:PENDING;index:idx_booking_approvals_ref,priority:3" json:"status"`
	AdminID     *uint       `gorm:"index" json:"admin_id,omitempty"`
	AdminNotes  *string     `gorm:"type:text" json:"admin_notes,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookingApproval) TableName() string {
	return "booking_approvals"
}
