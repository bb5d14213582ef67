package engine

import "errors"

// Business-rule violations. The state passed in is returned unchanged.
var (
	ErrNoPaidHolidays    = errors.New("no paid holidays remaining")
	ErrInvalidAdvance    = errors.New("advance amount must be a positive number")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrAlreadyPaid       = errors.New("payout already confirmed for this month")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRoomUnavailable   = errors.New("room is not available")
)
