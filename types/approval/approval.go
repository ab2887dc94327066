package approval

// SubmitApprovalRequest opens an approval for a flight or hotel booking.
type SubmitApprovalRequest struct {
	BookingType string `json:"booking_type" validate:"required,oneof=FLIGHT HOTEL flight hotel"`
	BookingID   uint   `json:"booking_id" validate:"required,gt=0"`
}

// DecisionRequest is an administrator's decision on a pending approval.
type DecisionRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=APPROVED REJECTED approved rejected"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}
