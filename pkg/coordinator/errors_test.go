package coordinator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusError(t *testing.T) {
	inner := errors.New("boom")
	err := StatusError{Code: http.StatusConflict, Err: inner}

	if !errors.Is(err, inner) {
		t.Fatalf("expected StatusError to unwrap")
	}
	if err.StatusCode() != http.StatusConflict || err.Error() != "boom" {
		t.Fatalf("unexpected status error %v (%d)", err, err.StatusCode())
	}
	if (StatusError{}).StatusCode() != http.StatusInternalServerError {
		t.Fatalf("expected zero code to map to 500")
	}
	if (StatusError{Code: http.StatusNotFound}).Error() != http.StatusText(http.StatusNotFound) {
		t.Fatalf("expected status text fallback")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errTabMissing)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "'tab' missing") {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	writeError(rec, errors.New("secret detail"))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("expected opaque 500, got %d %q", rec.Code, rec.Body.String())
	}
}
