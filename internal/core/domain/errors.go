package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidVendorType = errors.New("invalid vendor type")
	ErrViewNotFound      = errors.New("discovery view not found")
	ErrTooManyViews      = errors.New("too many open discovery views")
	ErrTokenInvalid      = errors.New("token is invalid or expired")
)
