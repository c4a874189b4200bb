package importer

import (
	"errors"
	"fmt"
)

// ErrUpstreamEmpty means the fetch or API call succeeded but yielded no
// usable product/review payload. It is deliberately distinct from a
// network failure so callers can suggest switching import methods.
var ErrUpstreamEmpty = errors.New("upstream returned no usable data")

// ErrConfigMissing means a required provider credential is absent. It is
// fatal for the call: never retried, never degraded to another adapter.
var ErrConfigMissing = errors.New("provider API key not configured")

// NetworkError wraps a failed fetch (unreachable host, bad status). It is
// surfaced to the caller verbatim; there is no automatic retry.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ErrorKind tags an import error for the API response.
func ErrorKind(err error) string {
	var netErr *NetworkError
	switch {
	case errors.Is(err, ErrConfigMissing):
		return "config-missing"
	case errors.Is(err, ErrUpstreamEmpty):
		return "upstream-empty"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "network"
	}
}
