package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/logger"
)

// Recover answers a panicking handler with a 500 and logs the panic with its
// stack. http.ErrAbortHandler is re-raised so net/http can abort the
// connection quietly.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logger.From(r.Context()).Error("handler panic",
				"panic", rec,
				"method", r.Method,
				"route", routePattern(r),
				"stack", string(debug.Stack()),
			)
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
		}()
		next.ServeHTTP(w, r)
	})
}
