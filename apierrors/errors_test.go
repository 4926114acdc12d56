package apierrors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
		want bool
	}{
		{&ConfigError{Reason: "x"}, IsConfig, true},
		{&ValidationError{Reason: "x"}, IsValidation, true},
		{&APIError{StatusCode: 404}, IsNotFound, true},
		{&APIError{StatusCode: 409}, IsConflict, true},
		{&APIError{StatusCode: 401}, IsUnauthorized, true},
		{&APIError{StatusCode: 410}, IsGone, true},
		{&APIError{StatusCode: 500}, IsNotFound, false},
		{&ConfigError{Reason: "x"}, IsValidation, false},
		{errors.New("plain"), IsConfig, false},
		{nil, IsNotFound, false},
	}
	for i, tt := range tests {
		if got := tt.pred(tt.err); got != tt.want {
			t.Errorf("case %d: predicate(%v) = %v, want %v", i, tt.err, got, tt.want)
		}
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("delete pod: %w", &APIError{StatusCode: 404, Reason: "NotFound"})
	if !IsNotFound(err) {
		t.Error("IsNotFound() missed a wrapped APIError")
	}
}

func TestUnwrap(t *testing.T) {
	inner := io.ErrUnexpectedEOF
	for _, err := range []error{
		&ConfigError{Reason: "x", Err: inner},
		&SerializationError{Reason: "x", Err: inner},
		&TransportError{Err: inner},
	} {
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("%T does not unwrap to its cause", err)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Reason: "NotFound", Message: `pods "x" not found`}
	if got := apiErr.Error(); got != `api: status 404 (NotFound): pods "x" not found` {
		t.Errorf("Error() = %q", got)
	}

	bare := &APIError{StatusCode: 500}
	if got := bare.Error(); got != "api: status 500" {
		t.Errorf("Error() = %q", got)
	}
}
