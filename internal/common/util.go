package common

import "strings"

// NormalizeEmail canonicalizes an identity key: surrounding whitespace is
// removed and the address is lower-cased, so "Ana@X.com" and "ana@x.com"
// refer to the same record.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop plaintext passwords from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
