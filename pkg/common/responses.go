package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "campaign-manager/pkg/errors"
)

// MaxBodyBytes caps request bodies read by ParseJSONBody
const MaxBodyBytes = 1 << 20

// RespondJSON writes data as the JSON response body
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ParseJSONBody decodes the request body into v. Malformed, empty or
// oversized bodies are reported as validation errors.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return pkgerrors.NewValidationError("Request body too large").WithDetail("limit", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return pkgerrors.NewValidationError("Request body is required")
		default:
			return pkgerrors.NewValidationError("Invalid request body").WithCause(err)
		}
	}
	return nil
}
