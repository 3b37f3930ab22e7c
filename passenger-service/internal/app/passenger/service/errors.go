package service

import "errors"

var (
	ErrPassengerNotFound  = errors.New("passenger not found")
	ErrDuplicatePassenger = errors.New("passenger with this email or phone already exists")
	ErrAccessDenied       = errors.New("access denied")
)
