package extract

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf16"
)

// DecodeToken converts one raw string token, delimiters included, into
// decoded text. Hex tokens are BOM-sniffed for UTF-16; literal tokens get
// the standard escape-sequence treatment. Unrecognized input decodes to "".
func DecodeToken(tok string) string {
	switch {
	case strings.HasPrefix(tok, "<"):
		return decodeHexToken(tok)
	case strings.HasPrefix(tok, "("):
		return decodeLiteralToken(tok)
	}
	return ""
}

// decodeHexToken decodes a < hex-digits > token. Whitespace between digits
// is allowed; an odd digit count gets a trailing zero nibble. A UTF-16 byte
// order mark selects big- or little-endian UTF-16 decoding; without one,
// each byte is a Latin-1 code point.
func decodeHexToken(tok string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(tok, "<"), ">")
	var digits strings.Builder
	for _, r := range body {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\f' {
			continue
		}
		digits.WriteRune(r)
	}
	hexStr := digits.String()
	if len(hexStr)%2 == 1 {
		hexStr += "0"
	}

	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return ""
	}

	switch {
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return decodeUTF16(raw[2:], true)
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return decodeUTF16(raw[2:], false)
	default:
		return latin1String(raw)
	}
}

func decodeUTF16(raw []byte, bigEndian bool) string {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		if bigEndian {
			units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
		} else {
			units = append(units, uint16(raw[i+1])<<8|uint16(raw[i]))
		}
	}
	return string(utf16.Decode(units))
}

func latin1String(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// decodeLiteralToken decodes a ( ... ) token: the \n \r \t \b \f escapes,
// backslash-linebreak continuations, one to three octal digits, and a
// dropped backslash before anything else. Unterminated input at end of
// token stops decoding where it stands.
func decodeLiteralToken(tok string) string {
	body := strings.TrimPrefix(tok, "(")
	body = strings.TrimSuffix(body, ")")

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteRune(rune(c))
			continue
		}
		i++
		if i >= len(body) {
			break
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\r':
			// Line continuation; a CRLF pair counts as one break.
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
			// Line continuation.
		default:
			if isOctalDigit(body[i]) {
				octal := string(body[i])
				for len(octal) < 3 && i+1 < len(body) && isOctalDigit(body[i+1]) {
					i++
					octal += string(body[i])
				}
				if v, err := strconv.ParseInt(octal, 8, 32); err == nil {
					b.WriteRune(rune(v))
				}
			} else {
				b.WriteRune(rune(body[i]))
			}
		}
	}
	return b.String()
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}
