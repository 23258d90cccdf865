package coordinator

import (
	"errors"
	"net/http"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

var (
	errTabMissing    = StatusError{Code: http.StatusBadRequest, Err: errors.New("query parameter 'tab' missing")}
	errTabDuplicated = StatusError{Code: http.StatusBadRequest, Err: errors.New("more than one query parameter 'tab' is not supported")}
	errNoFile        = errors.New("coordinator: upload contains no file part")
)

// writeError answers with the status carried by err, 500 otherwise. The
// message of a StatusError is sent as plain text.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		msg = httpErr.Error()
	}
	http.Error(w, msg, code)
}
