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
		{"ErrUsage", ErrUsage},
		{"ErrInputNotFound", ErrInputNotFound},
		{"ErrHeaderParse", ErrHeaderParse},
		{"ErrTypeConflict", ErrTypeConflict},
		{"ErrVersionConflict", ErrVersionConflict},
		{"ErrRelocation", ErrRelocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrTypeConflict(t *testing.T) {
	assert.Equal(t, "type conflict", ErrTypeConflict.Error())
	assert.False(t, errors.Is(ErrTypeConflict, ErrVersionConflict))
}

func TestIsConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"type conflict", ErrTypeConflict, true},
		{"wrapped version conflict", fmt.Errorf("sync a.md: %w", ErrVersionConflict), true},
		{"header parse", fmt.Errorf("%w: disk", ErrHeaderParse), true},
		{"relocation is fatal, not a conflict", ErrRelocation, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConflict(tt.err))
		})
	}
}
