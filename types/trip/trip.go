package trip

// RemoveTripRequest carries the reason shown to the trip owner.
type RemoveTripRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
