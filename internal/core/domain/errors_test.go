package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrTurnInProgress", ErrTurnInProgress},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrSpeechUnavailable", ErrSpeechUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrCircuitOpen", ErrCircuitOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapping tests that wrapped errors still match their sentinel
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("load chat %s: %w", "1700000000000", ErrNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
	assert.Equal(t, "load chat 1700000000000: not found", wrapped.Error())
}

// TestErrors_Distinct tests that no two sentinels compare equal
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnsupportedType, ErrTurnInProgress,
		ErrLLMUnavailable, ErrSpeechUnavailable, ErrRateLimited, ErrCircuitOpen,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]), "%v is %v", all[i], all[j])
			}
		}
	}
}
