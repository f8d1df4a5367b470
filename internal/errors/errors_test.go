package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", ErrAccountNotFound)))
	assert.True(t, IsAlreadyExists(fmt.Errorf("create: %w", ErrAccountAlreadyExists)))
	assert.True(t, IsInsufficientFunds(fmt.Errorf("withdraw: %w", ErrInsufficientFunds)))
	assert.False(t, IsNotFound(ErrInsufficientFunds))
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", NewValidationError("name", "must be non-empty"), true},
		{"wrapped validation error", fmt.Errorf("create: %w", NewValidationError("taxId", "must be non-empty")), true},
		{"invalid amount", ErrInvalidAmount, true},
		{"invalid date", fmt.Errorf("filter: %w", ErrInvalidDate), true},
		{"not found", ErrAccountNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("amount", "must be greater than zero")
	assert.EqualError(t, err, "validation error on field 'amount': must be greater than zero")
}
