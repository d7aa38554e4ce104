package loader

import (
	"errors"
	"fmt"
)

// FetchError reports that the resource could not be retrieved: the address
// did not resolve, the transport failed, or the source answered with a
// non-success status. It is never retried here.
type FetchError struct {
	Address string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("fetch: %v", e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Address, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusCode returns the status reported by the source, or 0 when the
// failure happened before a response was received.
func (e *FetchError) StatusCode() int {
	var sc interface{ StatusCode() int }
	if errors.As(e.Err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// ParseError reports content that could not be read as CSV text.
type ParseError struct {
	Address string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Address, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
