package jakim

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// TransportError is returned when the upstream could not be reached or answered
// with something other than a usable month of prayer times.
type TransportError struct {
	Zone       zone.Code
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("jakim: zone %s: HTTP %d: %v", e.Zone, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("jakim: zone %s: %v", e.Zone, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NotFoundError means a successful response did not cover the requested date,
// usually because the month has not been published yet.
type NotFoundError struct {
	Zone zone.Code
	Date string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("jakim: no prayer data for zone %s on %s", e.Zone, e.Date)
}
