// Package accesslog provides a middleware that records every RESTful API
// call in a log message.
package accesslog

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/KretovDmitry/shorturl/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// sugaredLogFormat is the format access log lines use.
// Uses fmt.Printf templating.
var sugaredLogFormat = "%s %s %s from %s - %s %dB in %s"

// Handler returns a middleware that records an access log message
// for every HTTP request being processed. A panicking handler is
// recovered and answered with 500 Internal Server Error.
func Handler(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// associate request ID with the request context
			// so that it can be added to the log messages
			ctx := logger.WithRequest(r.Context(), r)
			r = r.WithContext(ctx)
			if id, ok := logger.RequestID(ctx); ok {
				ww.Header().Set(logger.RequestIDHeader, id)
			}

			defer func(start time.Time) {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.With(ctx, "trace", string(debug.Stack())).
						Errorf("handler panic: %v", rec)
					if ww.Status() == 0 {
						http.Error(ww, http.StatusText(http.StatusInternalServerError),
							http.StatusInternalServerError)
					}
				}

				log.With(ctx).Infof(sugaredLogFormat,
					r.Method,                 // Method
					r.URL.Path,               // Path
					r.Proto,                  // Protocol
					r.RemoteAddr,             // RemoteAddr
					statusLabel(ww.Status()), // "200 OK"
					ww.BytesWritten(),        // Bytes Written
					time.Since(start),        // Elapsed
				)
			}(time.Now())

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(f)
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 100 && status < 300:
		return fmt.Sprintf("%d OK", status)
	case status >= 300 && status < 400:
		return fmt.Sprintf("%d Redirect", status)
	case status >= 400 && status < 500:
		return fmt.Sprintf("%d Client Error", status)
	case status >= 500:
		return fmt.Sprintf("%d Server Error", status)
	default:
		return fmt.Sprintf("%d Unknown", status)
	}
}
