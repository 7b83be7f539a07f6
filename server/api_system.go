package server

import "net/http"

// Performs quick check whether system is OK.
func (s *GoHomeServer) ping(writer http.ResponseWriter, _ *http.Request) {
	respondOk(writer)
}
