package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "invalid input")

	if err.Code != CodeValidation {
		t.Errorf("expected code=%s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "invalid input" {
		t.Errorf("expected message='invalid input', got %s", err.Message)
	}
	if len(err.Stack) == 0 {
		t.Error("expected stack trace to be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeNotFound, "video %s not found", "video_1_abc")

	if err.Code != CodeNotFound {
		t.Errorf("expected code=%s, got %s", CodeNotFound, err.Code)
	}
	if err.Message != "video video_1_abc not found" {
		t.Errorf("expected formatted message, got %s", err.Message)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "simple error",
			err:      New(CodeValidation, "invalid"),
			contains: []string{"VALIDATION_ERROR", "invalid"},
		},
		{
			name: "error with op",
			err: &Error{
				Code:    CodeInternal,
				Message: "submission failed",
				Op:      "render.submit",
			},
			contains: []string{"render.submit", "INTERNAL_ERROR", "submission failed"},
		},
		{
			name: "error with underlying",
			err: &Error{
				Code:    CodeInternal,
				Message: "wrapper",
				Err:     fmt.Errorf("underlying error"),
			},
			contains: []string{"wrapper", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q to contain %q", got, want)
				}
			}
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	base := New(CodeNotFound, "missing")
	wrapped := Wrap(base, "store.get", "lookup failed")

	if wrapped.Code != CodeNotFound {
		t.Errorf("expected wrapped error to preserve code, got %s", wrapped.Code)
	}
	if !errors.Is(wrapped, base) {
		t.Error("expected errors.Is to match wrapped error")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "op", "msg") != nil {
		t.Error("expected Wrap(nil) to return nil")
	}
	if WrapWithCode(nil, CodeTimeout, "op", "msg") != nil {
		t.Error("expected WrapWithCode(nil) to return nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeValidation, 400},
		{CodeBadRequest, 400},
		{CodeNotFound, 404},
		{CodeConflict, 409},
		{CodeUnavailable, 503},
		{CodeTimeout, 504},
		{CodeInternal, 500},
	}

	for _, tt := range tests {
		if got := New(tt.code, "x").HTTPStatus(); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestGetHTTPStatusPlainError(t *testing.T) {
	if got := GetHTTPStatus(fmt.Errorf("plain")); got != 500 {
		t.Errorf("expected 500 for plain error, got %d", got)
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsNotFound(NotFound("video", "v1")) {
		t.Error("expected IsNotFound to be true")
	}
	if !IsValidation(ValidationField("name", "required")) {
		t.Error("expected IsValidation to be true")
	}
	if !IsConflict(Conflict("render already running")) {
		t.Error("expected IsConflict to be true")
	}
	if IsNotFound(fmt.Errorf("plain")) {
		t.Error("expected IsNotFound to be false for plain error")
	}
}

func TestFields(t *testing.T) {
	err := ValidationField("props.name", "required")
	fields := GetFields(err)
	if fields["field"] != "props.name" {
		t.Errorf("expected field=props.name, got %v", fields["field"])
	}
}
