// Package hex encodes and decodes #RRGGBB color text.
package hex

import (
	"errors"
	"fmt"
)

// ErrLength and ErrDigit classify decode failures; match them with errors.Is.
var (
	ErrLength = errors.New("hex color must have exactly 6 digits")
	ErrDigit  = errors.New("invalid hex digit")
)

// DecodeError reports why a hex color could not be decoded.
type DecodeError struct {
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode hex color %q: %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const digits = "0123456789ABCDEF"

// Encode renders an RGB byte triple as "#RRGGBB" with uppercase digits.
func Encode(rgb [3]uint8) string {
	buf := [7]byte{'#'}
	for i, c := range rgb {
		buf[1+2*i] = digits[c>>4]
		buf[2+2*i] = digits[c&0x0f]
	}
	return string(buf[:])
}

// Decode parses exactly six hex digits (no '#') into an RGB byte triple.
// Upper and lower case are accepted. Anything else is an error; nothing
// is truncated or padded.
func Decode(s string) ([3]uint8, error) {
	var rgb [3]uint8
	if len(s) != 6 {
		return rgb, &DecodeError{Input: s, Err: ErrLength}
	}
	for i := range rgb {
		hi, ok1 := nibble(s[2*i])
		lo, ok2 := nibble(s[2*i+1])
		if !ok1 || !ok2 {
			return [3]uint8{}, &DecodeError{Input: s, Err: ErrDigit}
		}
		rgb[i] = hi<<4 | lo
	}
	return rgb, nil
}

// Parse strips one optional leading '#' and decodes the rest.
func Parse(s string) ([3]uint8, error) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	return Decode(s)
}

func nibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// FromFloat maps [0,1] channels to bytes, clamping and rounding to nearest.
func FromFloat(rgb [3]float32) [3]uint8 {
	var out [3]uint8
	for i, v := range rgb {
		out[i] = clampAndRound(v)
	}
	return out
}

// ToFloat maps bytes to [0,1] channels.
func ToFloat(rgb [3]uint8) [3]float32 {
	return [3]float32{
		float32(rgb[0]) / 255.0,
		float32(rgb[1]) / 255.0,
		float32(rgb[2]) / 255.0,
	}
}

func clampAndRound(v float32) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
