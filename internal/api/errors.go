package api

import (
	"errors"
	"fmt"
)

// StatusError is returned when the commerce API answers with a non-2xx
// status. Detail carries the server's free-text explanation when present.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("commerce API status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("commerce API status %d", e.Status)
}

// IsStatus reports whether err is a StatusError, returning it when so.
func IsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Detail extracts the server-provided detail text from err, if any.
func Detail(err error) string {
	if se, ok := IsStatus(err); ok {
		return se.Detail
	}
	return ""
}
