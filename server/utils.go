package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/pkg/errors"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	io.WriteString(writer, `{ "status": "OK" }`) // nolint: errcheck
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		respondError(writer, http.StatusInternalServerError, err.Error())
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(d) // nolint: errcheck
}

// Validates whether error is not null and responds different status
// depending on it.
func respondOkError(writer http.ResponseWriter, err error) {
	if err != nil {
		respondError(writer, statusFor(err), err.Error())
	} else {
		respondOk(writer)
	}
}

// Plain API error response.
func respondError(writer http.ResponseWriter, status int, problem string) {
	d, _ := json.Marshal(problem) // nolint: errcheck
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	io.WriteString(writer, fmt.Sprintf(`{ "status": "ERROR", "problem": %s }`, d)) // nolint: errcheck
}

// Decodes optional JSON object body.
func decodeBody(request *http.Request) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	if request.Body == nil {
		return data, nil
	}

	err := json.NewDecoder(io.LimitReader(request.Body, maxBodySize)).Decode(&data)
	if err == io.EOF {
		return data, nil
	}

	if err != nil {
		return nil, &ErrBadRequest{Reason: err.Error()}
	}

	return data, nil
}

// Logger middleware for the API.
func (s *GoHomeServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogURLToken, r.RequestURI,
			common.LogSystemToken, logSystem)
		next.ServeHTTP(w, r)
	})
}

// Adapts system logger for recovery handler.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println logs recovered panic.
func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic", errors.New(fmt.Sprint(v...)),
		common.LogSystemToken, logSystem)
}
