package port

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage unavailable")
	ErrDelivery   = errors.New("delivery failed")
)
