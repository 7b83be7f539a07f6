package viomi

import "fmt"

// ErrUnknownState defines run_state code without known activity.
type ErrUnknownState struct {
	Raw interface{}
}

// Error formats output.
func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("state_code: %v", e.Raw)
}

// ErrUnexpectedPayload defines device response of unexpected shape.
type ErrUnexpectedPayload struct {
	Raw interface{}
}

// Error formats output.
func (e *ErrUnexpectedPayload) Error() string {
	return fmt.Sprintf("unexpected payload %T", e.Raw)
}

// ErrInvalidFanSpeed defines unrecognized fan speed.
type ErrInvalidFanSpeed struct {
	Speed string
}

// Error formats output.
func (e *ErrInvalidFanSpeed) Error() string {
	return fmt.Sprintf("fan speed step not recognized (%s)", e.Speed)
}

// ErrStateNotReady defines command issued before the first successful poll.
type ErrStateNotReady struct {
}

// Error formats output.
func (*ErrStateNotReady) Error() string {
	return "vacuum state is not fetched yet"
}

// ErrInvalidValue defines telemetry value which failed validation.
type ErrInvalidValue struct {
	Property string
	Raw      interface{}
}

// Error formats output.
func (e *ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid %s value: %v", e.Property, e.Raw)
}
