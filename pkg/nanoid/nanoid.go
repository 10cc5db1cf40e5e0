// Package nanoid generates compact, URL-safe identifiers for records.
package nanoid

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Character sets
const (
	Number        = "0123456789"
	Lowercase     = "abcdefghijklmnopqrstuvwxyz"
	Uppercase     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	NumLowerUpper = Number + Lowercase + Uppercase
)

const defaultSize = 16

func getSize(l ...int) int {
	size := defaultSize
	if len(l) > 0 {
		size = l[0]
	}
	return size
}

// PrimaryKey generates a primary key of optional length using the default
// alphanumeric alphabet.
func PrimaryKey(l ...int) string {
	return gonanoid.MustGenerate(NumLowerUpper, getSize(l...))
}

// Lower generates an optional length nanoid of digits and lowercase letters.
func Lower(l ...int) string {
	return gonanoid.MustGenerate(Number+Lowercase, getSize(l...))
}

// IsPrimaryKey reports whether s looks like an id produced by PrimaryKey.
func IsPrimaryKey(s string) bool {
	if len(s) != defaultSize {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(NumLowerUpper, r) {
			return false
		}
	}
	return true
}
