package view

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError carries an HTTP status through the error pipeline.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...any) error {
	return &StatusError{Status: http.StatusNotFound, Err: fmt.Errorf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return &StatusError{Status: http.StatusBadRequest, Err: fmt.Errorf(format, args...)}
}

// HandlerFunc is a handler that hands failures to the error pipeline instead
// of writing them itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn into an http.Handler backed by rd's error page.
func (rd *Renderer) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			rd.Error(w, r, err)
		}
	})
}

// Error renders the error page. Client errors show their message; anything
// else is logged and answered with a generic 500.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong on our end. Please try again later."

	var se *StatusError
	if errors.As(err, &se) {
		status = se.Status
		message = se.Err.Error()
		rd.logger.Warn("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		rd.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	data := map[string]any{"Status": status, "Message": message}
	if renderErr := rd.Render(w, r, status, "error", http.StatusText(status), data); renderErr != nil {
		rd.logger.Error("render error page", "error", renderErr)
		http.Error(w, message, status)
	}
}
