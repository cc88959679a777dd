package parser

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyActivity is returned when nothing is left of an activity name after trimming
var ErrEmptyActivity = errors.New("please enter an activity name")

// NormalizeActivity trims, NFC-normalizes and upper-cases an activity name.
// Runs of inner whitespace collapse to one space, so "deep  work" and "Deep work"
// end up as the same activity
func NormalizeActivity(input string) (string, error) {
	fields := strings.Fields(norm.NFC.String(input))
	if len(fields) == 0 {
		return "", ErrEmptyActivity
	}
	return cases.Upper(language.Und).String(strings.Join(fields, " ")), nil
}
