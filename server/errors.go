package server

// ErrBadRequest defines generic server error.
type ErrBadRequest struct {
	Reason string
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	if e.Reason == "" {
		return "bad request"
	}
	return "bad request: " + e.Reason
}
