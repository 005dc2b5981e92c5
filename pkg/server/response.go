package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/chaosgame/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{Error: errors.UserMessage(err), Code: code})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	if code == errors.ErrCodeTimeout {
		return http.StatusGatewayTimeout
	}
	switch code.Kind() {
	case errors.KindInvalid:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindNetwork:
		return http.StatusBadGateway
	case errors.KindCanceled:
		return http.StatusServiceUnavailable
	case errors.KindUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// contentTypes maps output formats to MIME types.
var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"json": "application/json",
}
