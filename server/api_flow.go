package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Opens a new pairing flow.
func (s *GoHomeServer) startFlow(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.flow.Start())
}

// Submits pairing form of the existing flow.
func (s *GoHomeServer) configureFlow(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	data, err := decodeBody(request)
	if err != nil {
		respondOkError(writer, err)
		return
	}

	// Empty submission asks for the form.
	if 0 == len(data) {
		data = nil
	}

	step, err := s.flow.Configure(request.Context(), vars[string(urlFlowID)], data)
	if err != nil {
		respondOkError(writer, err)
		return
	}

	respond(writer, step)
}
