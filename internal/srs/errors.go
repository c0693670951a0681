package srs

import "errors"

var (
	ErrInvalidRating = errors.New("srs: invalid rating")
	ErrInvalidStatus = errors.New("srs: invalid status")
)
