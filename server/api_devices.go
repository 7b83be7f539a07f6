package server

import (
	"net/http"

	"github.com/go-home-io/viomise/systems/device"
	"github.com/go-home-io/viomise/systems/flow"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Returns all loaded entities with their last known state.
func (s *GoHomeServer) getDevices(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.devices.Devices())
}

// Invokes platform service against targeted vacuums.
func (s *GoHomeServer) callService(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	data, err := decodeBody(request)
	if err != nil {
		respondOkError(writer, err)
		return
	}

	respondOkError(writer, s.devices.CallService(request.Context(), vars[string(urlService)], data))
}

// Maps known errors to HTTP statuses.
func statusFor(err error) int {
	switch errors.Cause(err).(type) {
	case *device.ErrUnknownService, *device.ErrUnknownDevice, *flow.ErrUnknownFlow:
		return http.StatusNotFound
	case *device.ErrInvalidParams, *device.ErrInvalidTarget, *ErrBadRequest:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
