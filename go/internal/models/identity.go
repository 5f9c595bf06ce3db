package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the identity key for a display name: trimmed and Unicode case folded.
// Athletes and teams are indexed and deduplicated by this key.
func Key(name string) string {
	// A Caser is stateful, so one is created per call.
	return cases.Fold().String(strings.TrimSpace(name))
}

// EqualFold reports whether two names share an identity key.
func EqualFold(a, b string) bool {
	return Key(a) == Key(b)
}
