package access

import "errors"

// ErrUnauthorized is returned when a non-admin attempts an admin action.
var ErrUnauthorized = errors.New("access: unauthorized")
