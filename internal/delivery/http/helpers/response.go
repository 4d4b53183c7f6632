package helpers

import (
	"encoding/json"
	"net/http"
)

// Stable error codes carried in the envelope's error object.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          ErrCodeBadRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusForbidden:           ErrCodeForbidden,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusConflict:            ErrCodeConflict,
	http.StatusInternalServerError: ErrCodeInternalError,
}

// CodeForStatus returns the envelope code used for an HTTP status.
// Unlisted 4xx map to bad_request and everything else to internal_error.
func CodeForStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	if status >= 400 && status < 500 {
		return ErrCodeBadRequest
	}
	return ErrCodeInternalError
}

// APIError is the error half of the envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse wraps every JSON body: exactly one of Data and Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

func writeEnvelope(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes data inside the envelope with a null error.
func WriteJSONSuccess(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, APIResponse{Data: data})
}

// WriteJSONError writes a null data field and the given error.
func WriteJSONError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteStatusError is WriteJSONError with the code derived from status.
func WriteStatusError(w http.ResponseWriter, status int, message string) {
	WriteJSONError(w, status, CodeForStatus(status), message)
}
