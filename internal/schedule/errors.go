package schedule

import "errors"

var (
	// ErrInvalidInput is returned when a request field is malformed.
	ErrInvalidInput = errors.New("schedule: invalid input")

	// ErrInvalidRange is returned when a candidate's start is not before its end.
	ErrInvalidRange = errors.New("schedule: start time must be before end time")

	// ErrOverlap is returned when a candidate shares a minute with an existing slot.
	ErrOverlap = errors.New("schedule: time range overlaps an existing slot")

	// ErrSlotReserved is returned when deleting a slot consumed by a booking.
	ErrSlotReserved = errors.New("schedule: slot is reserved and cannot be deleted")

	// ErrSlotNotFound is returned when the referenced slot does not exist.
	ErrSlotNotFound = errors.New("schedule: slot not found")
)
