package services_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"ecogenius/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternal, "relay", "upload", "image host rejected", base)
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"relay", "upload", "image host rejected"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[error]int{
		services.Wrap(services.ErrValidation, "billboard", "create", "title required", nil): http.StatusBadRequest,
		services.Wrap(services.ErrNotFound, "council", "get", "unknown", nil):               http.StatusNotFound,
		services.Wrap(services.ErrConfiguration, "llm", "", "missing key", nil):             http.StatusServiceUnavailable,
		services.Wrap(services.ErrTimeout, "llm", "complete", "", nil):                      http.StatusGatewayTimeout,
		services.Wrap(services.ErrExternal, "relay", "upload", "", nil):                     http.StatusBadGateway,
		errors.New("plain"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := services.HTTPStatus(err); got != want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", err, got, want)
		}
	}
	if got := services.HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("expected 200 for nil, got %d", got)
	}
}
