package domain

import (
	"errors"
	"fmt"
	"os"
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
		{"ErrPathTooLong", ErrPathTooLong},
		{"ErrUnsupportedBackend", ErrUnsupportedBackend},
		{"ErrWatcherUnavailable", ErrWatcherUnavailable},
		{"ErrWatcherClosed", ErrWatcherClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestIsProgrammerError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"invalid input", ErrInvalidInput, true},
		{"wrapped invalid input", fmt.Errorf("write: %w", ErrInvalidInput), true},
		{"path too long", fmt.Errorf("mkdir: %w", ErrPathTooLong), true},
		{"os invalid", &os.PathError{Op: "open", Path: "x", Err: os.ErrInvalid}, true},
		{"permission denied", os.ErrPermission, false},
		{"not found", ErrNotFound, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsProgrammerError(tt.err))
		})
	}
}

func TestDeserializationError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DeserializationError{Module: "Awake", Path: "/data/Awake/settings.json", Err: cause}

	assert.Contains(t, err.Error(), `"Awake"`)
	assert.Contains(t, err.Error(), "/data/Awake/settings.json")
	assert.True(t, errors.Is(err, cause))

	var target *DeserializationError
	assert.True(t, errors.As(fmt.Errorf("load: %w", err), &target))
}

func TestPersistenceError(t *testing.T) {
	err := &PersistenceError{Module: "", Path: "/data/settings.json", Err: os.ErrPermission}

	assert.Contains(t, err.Error(), RootModuleName)
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.False(t, IsProgrammerError(err))

	err = &PersistenceError{Module: "FancyZones", Err: ErrPathTooLong}
	assert.True(t, IsProgrammerError(err))
}
