package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageFormat(t *testing.T) {
	plain := NewParseError("post %s has no title", "abc123")
	assert.Equal(t, "parse error: post abc123 has no title", plain.Error())

	wrapped := NewSurfaceError(errors.New("context deadline exceeded"), "navigate %s", "https://reddit.com")
	assert.Equal(t, "surface error: navigate https://reddit.com: context deadline exceeded", wrapped.Error())
}

func TestTypeOfUnwrapsNestedErrors(t *testing.T) {
	cause := NewSurfaceError(nil, "scroll timed out")
	wrapped := fmt.Errorf("attempt 2: %w", cause)

	assert.Equal(t, ErrorTypeSurface, TypeOf(wrapped))
	assert.True(t, IsSurface(wrapped))
	assert.False(t, IsParse(wrapped))
}

func TestTypeOfUnknownForForeignErrors(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, TypeOf(errors.New("boom")))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(nil))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("websocket closed")
	err := NewExhaustedError(cause, "post %s", "xyz")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsExhausted(err))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		errType   ErrorType
		retryable bool
	}{
		{"surface errors retry", ErrorTypeSurface, true},
		{"unknown errors retry", ErrorTypeUnknown, true},
		{"parse errors do not retry", ErrorTypeParse, false},
		{"exhausted does not retry", ErrorTypeExhausted, false},
		{"config does not retry", ErrorTypeConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.errType))
		})
	}
}
