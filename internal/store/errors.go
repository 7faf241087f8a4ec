package store

import "errors"

// Sentinel errors returned by entity accessors. Handlers map ErrNotFound to a
// 404 response and ErrForbidden to a 403 response; anything else is treated as
// fatal for the request.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)
