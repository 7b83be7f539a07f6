package flow

import "fmt"

// ErrCannotConnect defines device which didn't answer the identity request.
type ErrCannotConnect struct {
	Host string
	Err  error
}

// Error formats output.
func (e *ErrCannotConnect) Error() string {
	return fmt.Sprintf("cannot connect to %s: %v", e.Host, e.Err)
}

// Unwrap returns underlying device error.
func (e *ErrCannotConnect) Unwrap() error {
	return e.Err
}

// ErrAlreadyConfigured defines device which already has an entry.
type ErrAlreadyConfigured struct {
	UniqueID string
}

// Error formats output.
func (e *ErrAlreadyConfigured) Error() string {
	return fmt.Sprintf("device %s is already configured", e.UniqueID)
}

// ErrInvalidInput defines setup input which failed validation.
type ErrInvalidInput struct {
}

// Error formats output.
func (*ErrInvalidInput) Error() string {
	return "invalid input"
}

// ErrUnknownFlow defines missing or expired flow session.
type ErrUnknownFlow struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownFlow) Error() string {
	return fmt.Sprintf("flow %s not found", e.ID)
}
