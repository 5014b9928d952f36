package server

import (
	"encoding/json"
	"net/http"

	"github.com/sherif414/floattree/pkg/errors"
)

// errorResponse is the JSON envelope for API errors.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps structured error codes to HTTP status codes and writes
// a JSON error envelope. Plain errors become 500s with a generic message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "code", code, "error", err)
	}

	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidNodeID,
		errors.ErrCodeInvalidStrategy,
		errors.ErrCodeInvalidSnapshot,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeNodeNotFound,
		errors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
