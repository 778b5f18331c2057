package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrReadFailure", ErrReadFailure},
		{"ErrParseFailure", ErrParseFailure},
		{"ErrGenerationFailure", ErrGenerationFailure},
		{"ErrValidationFailure", ErrValidationFailure},
		{"ErrGenerationInProgress", ErrGenerationInProgress},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestFailure_ErrorReturnsMessage(t *testing.T) {
	f := NewFailure(ErrGenerationFailure, MsgGeneration, errors.New("unexpected end of JSON input"))

	assert.Equal(t, MsgGeneration, f.Error())
	assert.Equal(t, "unexpected end of JSON input", f.Cause())
}

func TestFailure_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	f := NewFailure(ErrParseFailure, MsgDOCXParseFailure, cause)

	assert.ErrorIs(t, f, ErrParseFailure)
	assert.ErrorIs(t, f, cause)
	assert.NotErrorIs(t, f, ErrReadFailure)

	wrapped := fmt.Errorf("extract: %w", f)
	assert.ErrorIs(t, wrapped, ErrParseFailure)

	var target *Failure
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, MsgDOCXParseFailure, target.Message)
}

func TestFailure_FallbackMessages(t *testing.T) {
	assert.Equal(t, "read failure", NewFailure(ErrReadFailure, "", nil).Error())
	assert.Equal(t, MsgUnknown, (&Failure{}).Error())
	assert.Equal(t, "read failure", NewFailure(ErrReadFailure, "", nil).Cause())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"failure", NewFailure(ErrValidationFailure, MsgNoFileSelected, nil), MsgNoFileSelected},
		{
			"wrapped failure",
			fmt.Errorf("pipeline: %w", NewFailure(ErrGenerationFailure, MsgGeneration, errors.New("x"))),
			MsgGeneration,
		},
		{"plain error", ErrGenerationInProgress, "generation in progress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}
