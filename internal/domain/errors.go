package domain

import "errors"

var (
	ErrClubNotFound    = errors.New("club not found")
	ErrCourtNotFound   = errors.New("court not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
)

var (
	ErrSlotTaken        = errors.New("requested slots are no longer available")
	ErrGameFull         = errors.New("game is already full")
	ErrAlreadyJoined    = errors.New("user already joined this game")
	ErrAlreadyRequested = errors.New("user already requested to join this game")
	ErrEmailTaken       = errors.New("email is already registered")
)

var (
	ErrInvalidStatus = errors.New("operation not allowed in current booking status")
	ErrNotOwner      = errors.New("only the booking owner may perform this action")
	ErrNoJoinRequest = errors.New("user has no pending join request for this game")
)

var (
	ErrValidation = errors.New("validation error")
)
