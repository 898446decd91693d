package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baharkarakas/sample-app/internal/api/validate"
	"github.com/baharkarakas/sample-app/internal/logger"
	"github.com/baharkarakas/sample-app/internal/services"
)

// NoticeHeader carries the one-line message that accompanies a redirect.
const NoticeHeader = "X-Notice"

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteErr maps a service error to its response; unexpected errors are
// logged and reported as 500.
func WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	var errs validate.Errs
	switch {
	case errors.As(err, &errs):
		WriteError(w, http.StatusUnprocessableEntity, "validation_failed", "validation failed", errs)
	case errors.Is(err, services.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email/password combination", nil)
	case errors.Is(err, services.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "forbidden", nil)
	default:
		logger.From(r.Context()).Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

// Redirect sends the client to location with an optional notice.
func Redirect(w http.ResponseWriter, location string, status int, notice string) {
	w.Header().Set("Location", location)
	if notice != "" {
		w.Header().Set(NoticeHeader, notice)
	}
	body := map[string]string{"location": location}
	if notice != "" {
		body["notice"] = notice
	}
	WriteJSON(w, status, body)
}

// DecodeJSON reads the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return validate.Errs{{Field: "body", Msg: "is not valid JSON"}}
	}
	return nil
}
