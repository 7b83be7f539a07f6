package miio

import "fmt"

// ErrDevice defines a failed conversation with the device.
// It covers network failures, protocol failures and errors reported by the device itself.
type ErrDevice struct {
	Host   string
	Method string
	Err    error
}

// Error formats output.
func (e *ErrDevice) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("device %s: %s", e.Host, e.Err)
	}
	return fmt.Sprintf("device %s, method %s: %s", e.Host, e.Method, e.Err)
}

// Cause returns underlying error.
func (e *ErrDevice) Cause() error {
	return e.Err
}

// Unwrap returns underlying error.
func (e *ErrDevice) Unwrap() error {
	return e.Err
}

// ErrInvalidToken defines a malformed device token.
type ErrInvalidToken struct {
}

// Error formats output.
func (*ErrInvalidToken) Error() string {
	return "token must be 32 hex characters"
}

// ErrResponse defines an error returned by the device in the response payload.
type ErrResponse struct {
	Code    int
	Message string
}

// Error formats output.
func (e *ErrResponse) Error() string {
	return fmt.Sprintf("device returned error %d: %s", e.Code, e.Message)
}

// ErrChecksum defines a packet with a wrong checksum.
type ErrChecksum struct {
}

// Error formats output.
func (*ErrChecksum) Error() string {
	return "packet checksum mismatch"
}
