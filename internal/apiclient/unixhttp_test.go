//go:build unix

package apiclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDecodeAPIError(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusNotFound)
	rr.WriteString(`{"error": "no such project in any IDE's recent list"}`)

	err := decodeAPIError(rr.Result())
	var api *APIError
	if !errors.As(err, &api) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if api.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", api.StatusCode)
	}
	if api.Message != "no such project in any IDE's recent list" {
		t.Errorf("Expected parsed message, got %q", api.Message)
	}
	if !IsNotFound(err) {
		t.Error("Expected IsNotFound to match a 404 APIError")
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"404", &APIError{StatusCode: http.StatusNotFound}, true},
		{"422", &APIError{StatusCode: http.StatusUnprocessableEntity}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsNotFound(tt.err); got != tt.want {
			t.Errorf("IsNotFound(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWrapConnErr(t *testing.T) {
	c := &Client{socketPath: "/run/test.sock"}

	refused := c.wrapConnErr(errors.New("dial unix /run/test.sock: connect: no such file or directory"))
	if !IsUnavailable(refused) {
		t.Errorf("Expected connection failure to map to ErrDaemonUnavailable, got %v", refused)
	}

	other := errors.New("context deadline exceeded")
	if got := c.wrapConnErr(other); got != other {
		t.Errorf("Unrelated error must pass through, got %v", got)
	}
	if IsUnavailable(other) {
		t.Error("Unrelated error must not read as daemon-unavailable")
	}
}
