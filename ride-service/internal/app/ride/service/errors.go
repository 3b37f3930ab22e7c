package service

import "errors"

var (
	ErrRideNotFound            = errors.New("ride not found")
	ErrInvalidStatusTransition = errors.New("invalid ride status transition")
	ErrNegativePrice           = errors.New("price must not be negative")
	ErrAccessDenied            = errors.New("access denied")
)
