package device

import "fmt"

// ErrUnknownService defines an unknown service error.
type ErrUnknownService struct {
	Service string
}

// Error formats output.
func (e *ErrUnknownService) Error() string {
	return fmt.Sprintf("unknown service %s", e.Service)
}

// ErrUnknownDevice defines a missing device error.
type ErrUnknownDevice struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownDevice) Error() string {
	return fmt.Sprintf("device %s is not loaded", e.ID)
}

// ErrDuplicateDevice defines an already loaded device error.
type ErrDuplicateDevice struct {
	Host string
}

// Error formats output.
func (e *ErrDuplicateDevice) Error() string {
	return fmt.Sprintf("device %s is already loaded", e.Host)
}

// ErrInvalidParams defines incorrect service data error.
type ErrInvalidParams struct {
	Service string
	Reason  string
}

// Error formats output.
func (e *ErrInvalidParams) Error() string {
	return fmt.Sprintf("invalid data for %s: %s", e.Service, e.Reason)
}

// ErrInvalidTarget defines incorrect entity_id pattern error.
type ErrInvalidTarget struct {
	Pattern string
}

// Error formats output.
func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("invalid entity_id pattern %s", e.Pattern)
}
