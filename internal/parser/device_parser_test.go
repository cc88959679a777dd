package parser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDeviceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"lowercased", "Desktop", "desktop", nil},
		{"trimmed", "  laptop  ", "laptop", nil},
		{"invalid chars stripped", `work<>:"/\|?*pc`, "workpc", nil},
		{"inner space kept", "home pc", "home pc", nil},
		{"empty", "   ", "", ErrEmptyDeviceName},
		{"only invalid", `<>:?*`, "", ErrInvalidDeviceName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDeviceName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDeviceNameTruncates(t *testing.T) {
	got, err := NormalizeDeviceName(strings.Repeat("é", 40))
	require.NoError(t, err)
	assert.Equal(t, MaxDeviceNameLength, utf8.RuneCountInString(got))
}

func TestDefaultDeviceName(t *testing.T) {
	assert.Equal(t, "alice-work-laptop", DefaultDeviceName("Alice", "WORK-LAPTOP"))
	assert.Equal(t, "bob-pc", DefaultDeviceName("bob", "pc\n"))
}

func TestStoreFileName(t *testing.T) {
	assert.Equal(t, "clockbuster_desktop.db", StoreFileName("desktop"))
}
