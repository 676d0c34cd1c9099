package request

type CreateBookingRequest struct {
	RoomID   string `json:"room_id" validate:"required,uuid4"`
	PersonID string `json:"person_id" validate:"required,uuid4"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Session  string `json:"session" validate:"required"`
	Pin      string `json:"pin" validate:"required,len=4"`
}

type UpdateBookingRequest struct {
	Pin      string  `json:"pin" validate:"required,len=4"`
	PersonID *string `json:"person_id,omitempty" validate:"omitempty,uuid4"`
	Date     *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Session  *string `json:"session,omitempty"`
}

type DeleteBookingRequest struct {
	Pin string `json:"pin" validate:"required,len=4"`
}

type AvailabilityRequest struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	ExcludeBooking string `json:"exclude_booking,omitempty" validate:"omitempty,uuid4"`
}
