package service

import "errors"

var (
	ErrRatingNotFound  = errors.New("rating not found")
	ErrInvalidRatingID = errors.New("invalid rating id")
	ErrAccessDenied    = errors.New("access denied: caller is not a participant of this ride")
)
