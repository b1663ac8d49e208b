package prayer

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// ServiceUnavailableError is the only error Fetch returns once the fallback
// policy has run: the upstream failed and nothing was cached for the day.
// Callers should treat it as "temporarily unavailable, retry later".
type ServiceUnavailableError struct {
	Zone zone.Code
	Date string
	Err  error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("prayer times unavailable for zone %s on %s: %v", e.Zone, e.Date, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }
