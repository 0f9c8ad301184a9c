package mapshare

import (
	"errors"
	"fmt"
)

// ErrShareIDMissing reports a fetch attempted without a configured share
// identifier. It is a configuration failure, not a transport failure.
var ErrShareIDMissing = errors.New("mapshare: share identifier not configured")

// TransportError reports a failed feed request.
type TransportError struct {
	URL    string
	Status string
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapshare: fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("mapshare: fetch %s: status %s: %s", e.URL, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExtractionError reports a placemark that carries a property container but
// is missing a required property. The whole extraction call fails; partial
// results are never returned.
type ExtractionError struct {
	Property string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapshare: extract: %v", e.Err)
	}
	return fmt.Sprintf("mapshare: extract: missing required property %q", e.Property)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
