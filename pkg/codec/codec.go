// Package codec converts payloads between raw bytes and the three textual
// forms accepted on the command line: hex, pure ASCII and mixed ASCII.
// Hex is the canonical form; every other form is converted to hex first.
//
// All conversions are total: malformed input degrades to fewer bytes
// instead of producing an error.
package codec

import (
	"encoding/hex"
	"strings"
)

// Mode selects how payload text typed by the user is interpreted.
type Mode int

const (
	// ModeHex parses the text as hex digits. Everything else is ignored.
	ModeHex Mode = iota
	// ModePureASCII maps every character to its byte value, no escapes.
	ModePureASCII
	// ModeMixedASCII maps characters to bytes but honors \xHH escapes.
	ModeMixedASCII
)

// String returns the name of the mode as used in diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeHex:
		return "hex"
	case ModePureASCII:
		return "pure ascii"
	case ModeMixedASCII:
		return "mixed ascii"
	default:
		return ""
	}
}

// Encode converts text typed in mode m into canonical hex.
func Encode(m Mode, text string) string {
	switch m {
	case ModePureASCII:
		return PureASCIIToHex(text)
	case ModeMixedASCII:
		return MixedASCIIToHex(text)
	default:
		return BytesToHex(HexToBytes(text))
	}
}

// HexToBytes pairs up the hex digits found in s. Characters that are not
// hex digits are skipped and an odd trailing nibble is dropped.
func HexToBytes(s string) []byte {
	out := make([]byte, 0, len(s)/2)

	hi, pending := byte(0), false
	for i := 0; i < len(s); i++ {
		v, ok := nibble(s[i])
		if !ok {
			continue
		}
		if !pending {
			hi, pending = v, true
			continue
		}
		out = append(out, hi<<4|v)
		pending = false
	}

	return out
}

// BytesToHex renders b as uppercase hex digits without separators.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// PureASCIIToHex converts every character of s to its Latin-1 byte,
// backslashes included. Characters outside Latin-1 become '?'.
func PureASCIIToHex(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, latin1(r))
	}
	return BytesToHex(out)
}

// MixedASCIIToHex converts s to hex, turning each \xHH sequence into the
// single byte HH and every other character into its Latin-1 byte.
func MixedASCIIToHex(s string) string {
	runes := []rune(s)
	out := make([]byte, 0, len(runes))

	for i := 0; i < len(runes); i++ {
		if b, ok := escapeAt(runes, i); ok {
			out = append(out, b)
			i += 3
			continue
		}
		out = append(out, latin1(runes[i]))
	}

	return BytesToHex(out)
}

// BytesToMixedASCII is the inverse of MixedASCIIToHex: printable ASCII is
// kept as is, everything else (the backslash included) is written as \xHH.
func BytesToMixedASCII(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for _, c := range b {
		if c >= 0x20 && c <= 0x7e && c != '\\' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(`\x`)
		sb.WriteString(BytesToHex([]byte{c}))
	}

	return sb.String()
}

func escapeAt(runes []rune, i int) (byte, bool) {
	if i+3 >= len(runes) || runes[i] != '\\' || runes[i+1] != 'x' {
		return 0, false
	}
	if runes[i+2] > 0x7f || runes[i+3] > 0x7f {
		return 0, false
	}
	hi, ok := nibble(byte(runes[i+2]))
	if !ok {
		return 0, false
	}
	lo, ok := nibble(byte(runes[i+3]))
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func latin1(r rune) byte {
	if r < 0 || r > 0xff {
		return '?'
	}
	return byte(r)
}
