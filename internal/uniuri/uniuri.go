package uniuri

import (
	"crypto/rand"
)

const (
	// StdLen gives ~95 bits of entropy with StdChars.
	StdLen = 16

	// TokenLen gives ~190 bits of entropy with StdChars, used for CSRF tokens.
	TokenLen = 32
)

// StdChars is the alphabet of generated strings.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// New returns a random string of StdLen characters.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewToken returns a random string of TokenLen characters.
func NewToken() string {
	return NewLenChars(TokenLen, StdChars)
}

// NewLen returns a random string of length characters from StdChars.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of length characters from chars.
// chars must hold between 2 and 256 bytes. Bytes above the largest multiple
// of len(chars) are discarded so every character is equally likely.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 { //nolint:mnd
		panic("uniuri: wrong charset length")
	}

	limit := 256 - (256 % clen) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1) //nolint:mnd

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
