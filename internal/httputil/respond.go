// Package httputil provides JSON request/response helpers shared by all
// gateway handlers.
package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	gwerrors "github.com/relaedzc/simple-fireblocks-service/internal/errors"
)

const maxRequestBody = 1 << 20 // 1MiB

// ErrorBody is the uniform failure envelope.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError surfaces a classified error as {detail} with its mapped status.
func WriteError(w http.ResponseWriter, err error) {
	e := gwerrors.AsError(err)
	WriteJSON(w, e.Status, ErrorBody{Detail: e.Detail})
}

// BadRequest writes a 400 {detail} response.
func BadRequest(w http.ResponseWriter, detail string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Detail: detail})
}

// DecodeJSON decodes a size-limited JSON body into v. On failure it writes
// a 400 response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		BadRequest(w, "request body required")
		return false
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		BadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
