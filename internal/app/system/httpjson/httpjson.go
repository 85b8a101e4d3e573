// internal/app/system/httpjson/httpjson.go

// Package httpjson is the single place API responses are written.
// Every endpoint emits either a JSON document or the stable error
// envelope {"error": {"code": "...", "message": "..."}} so clients can
// switch on code without parsing prose.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// MaxBodySize caps request bodies to keep oversized payloads from
// exhausting memory.
const MaxBodySize = 1 << 20 // 1 MB

// Error codes surfaced to clients. These are contract, not cosmetics;
// tests assert on them.
const (
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeValidationFailed = "validation_failed"
	CodeInvalidAssignee  = "invalid_assignee"
	CodeEmptyContent     = "empty_content"
	CodeAlreadyMember    = "already_member"
	CodeConflict         = "conflict"
	CodeInternal         = "internal_error"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes the error envelope with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string) {
	Respond(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, CodeForbidden, message)
}

// NotFound writes a 404. The same body is used whether the resource is
// missing or merely outside the caller's visible set.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, CodeNotFound, "resource not found")
}

// Validation writes a 400 with a specific validation code.
func Validation(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusBadRequest, code, message)
}

// Internal writes a 500 without leaking storage details; callers log
// the underlying error themselves.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

// ErrBodyTooLarge is returned by Decode when the request body exceeds
// MaxBodySize.
var ErrBodyTooLarge = errors.New("request body too large")

// Decode reads a JSON request body into dst, enforcing MaxBodySize.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return err
	}
	return nil
}
