package xerrors

import (
	"errors"
)

// Sentinel errors the gateway raises across package boundaries.
var (
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrNoToken        = errors.New("no authentication token found")
	ErrSessionExpired = errors.New("session expired or invalid")
)

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
