package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to reach storage", cause)

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", Validation("bad exam", nil), http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), http.StatusBadRequest},
		{"conflict", Conflict("slot taken"), http.StatusConflict},
		{"not found", NotFound("Exam"), http.StatusNotFound},
		{"internal", Internal("boom", nil), http.StatusInternalServerError},
		{"unavailable", Unavailable("storage"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWithDetailsRoundTrip(t *testing.T) {
	err := Conflict("Classroom is already booked").WithDetails(map[string]any{
		"conflicting_exam_id": "64f1c0ffee0000000000aaaa",
	})

	data := err.ToJSON()
	if !strings.Contains(string(data), "conflicting_exam_id") {
		t.Errorf("expected details in JSON, got %s", data)
	}
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	plain := errors.New("some driver failure")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, appErr.Code)
	}
	if !errors.Is(appErr, plain) {
		t.Error("expected the original error to be preserved")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(Conflict("x"), CodeConflict) {
		t.Error("expected IsCode to match conflict")
	}
	if IsCode(errors.New("plain"), CodeConflict) {
		t.Error("expected IsCode to reject non-AppError")
	}
}
