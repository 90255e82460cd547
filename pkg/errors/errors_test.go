package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidEngine, "unknown engine: %q", "warp")

	if err.Code != ErrCodeInvalidEngine {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidEngine)
	}
	if err.Message != `unknown engine: "warp"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_ENGINE: unknown engine: "warp"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeRenderFailed, cause, "render graph.gv")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidFormat, true},
		{"DifferentCode", New(ErrCodeInvalidFormat, "test"), ErrCodeInvalidEngine, false},
		{"PlainError", errors.New("plain"), ErrCodeInternal, false},
		{"WrappedInFmt", fmt.Errorf("outer: %w", New(ErrCodeMissingArgument, "x")), ErrCodeMissingArgument, true},
		{"Nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeExecutableNotFound, "dot")); got != ErrCodeExecutableNotFound {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeExecutableNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format: png2")
	if got := UserMessage(err); got != "unknown format: png2" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := errors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
