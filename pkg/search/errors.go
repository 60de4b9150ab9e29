package search

import "fmt"

// TransportError means no usable reply reached us: the backend was
// unreachable, the request was cancelled, or the body could not be read.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to send request to search backend: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means the backend replied with something that is neither a
// query result nor an error payload.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode search backend response (status: %d): %s", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
