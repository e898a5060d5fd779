package status

import "errors"

var (
	ErrNotFound           = errors.New("store: record not found")
	ErrTicketNotAvailable = errors.New("ticket: ticket is not available")
	ErrTicketHeld         = errors.New("ticket: ticket is held by another buyer")
	ErrNotHolder          = errors.New("ticket: hold belongs to another buyer")
	ErrHoldsDisabled      = errors.New("ticket: holds require redis")
	ErrUnknownGame        = errors.New("ticket: game does not exist")
	ErrDuplicateUser      = errors.New("user: username or email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
