package domain

import "errors"

var (
	ErrInvalidAddress     = errors.New("invalid address format")
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidUnit        = errors.New("invalid metric")
	ErrInvalidInput       = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)
