package ids

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// New returns a 24-hex-character identifier from 12 random bytes.
func New() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Valid reports whether s is a well-formed 24-hex-character identifier.
func Valid(s string) bool {
	return idPattern.MatchString(s)
}
