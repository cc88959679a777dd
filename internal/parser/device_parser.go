package parser

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxDeviceNameLength caps device names, which end up inside store file names
const MaxDeviceNameLength = 30

var (
	// ErrEmptyDeviceName is returned for a blank device name
	ErrEmptyDeviceName = errors.New("please enter a device name")
	// ErrInvalidDeviceName is returned when only invalid characters were given
	ErrInvalidDeviceName = errors.New("device name contains only invalid characters, use letters and numbers")
)

// invalidFileNameChars are rejected by at least one of the platforms a synced folder may reach
const invalidFileNameChars = `<>:"/\|?*`

// NormalizeDeviceName lower-cases a device name, strips characters that cannot appear in
// a file name and truncates it to MaxDeviceNameLength runes
func NormalizeDeviceName(input string) (string, error) {
	name := cases.Lower(language.Und).String(strings.TrimSpace(input))
	if name == "" {
		return "", ErrEmptyDeviceName
	}

	name = stripInvalid(name)
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidDeviceName
	}

	return truncate(name, MaxDeviceNameLength), nil
}

// DefaultDeviceName suggests "user-host", cleaned the same way as NormalizeDeviceName.
// It returns "" when nothing usable is left
func DefaultDeviceName(user, host string) string {
	name, err := NormalizeDeviceName(user + "-" + host)
	if err != nil {
		return ""
	}
	return name
}

// StoreFileName is the conventional store file for a device
func StoreFileName(device string) string {
	return "clockbuster_" + device + ".db"
}

func stripInvalid(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(invalidFileNameChars, r) {
			return -1
		}
		return r
	}, s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
