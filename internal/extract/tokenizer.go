package extract

import (
	"regexp"
)

var textObjectRe = regexp.MustCompile(`(?s)\bBT\b(.*?)\bET\b`)

// ShowTokens returns the raw string tokens (delimiters included) that are
// operands of the text-showing operators Tj, ', " and TJ inside a
// decompressed content stream.
//
// Scanning is restricted to BT..ET text objects when the stream has any, so
// bracketed or parenthesized content elsewhere is not picked up; streams
// with no text object are scanned whole as a fallback. This is a heuristic
// pass over string literals adjacent to show operators, not a content
// stream interpreter: positioning, font and graphics-state operators are
// ignored.
func ShowTokens(content []byte) []string {
	var tokens []string
	regions := textObjectRe.FindAllSubmatch(content, -1)
	if regions == nil {
		return scanShows(content, nil)
	}
	for _, m := range regions {
		tokens = scanShows(m[1], tokens)
	}
	return tokens
}

// scanShows walks one region and appends raw show tokens to dst.
// Each match attempt is independent; no state survives between calls.
func scanShows(region []byte, dst []string) []string {
	var (
		lastString string   // most recent string token, direct-show candidate
		arrayElems []string // string elements of an open [ ... ] array
		inArray    bool
		closed     []string // elements of a just-closed array awaiting TJ
		haveClosed bool
	)

	i := 0
	for i < len(region) {
		c := region[i]
		switch {
		case isContentSpace(c):
			i++
		case c == '(':
			tok, next := readLiteralToken(region, i)
			i = next
			if inArray {
				arrayElems = append(arrayElems, tok)
			} else {
				lastString = tok
				haveClosed = false
			}
		case c == '<':
			if i+1 < len(region) && region[i+1] == '<' {
				i += 2 // dictionary start, not a string
				continue
			}
			tok, next := readHexToken(region, i)
			i = next
			if inArray {
				arrayElems = append(arrayElems, tok)
			} else {
				lastString = tok
				haveClosed = false
			}
		case c == '>':
			if i+1 < len(region) && region[i+1] == '>' {
				i += 2
			} else {
				i++
			}
		case c == '[':
			inArray = true
			arrayElems = nil
			i++
		case c == ']':
			closed = arrayElems
			haveClosed = true
			inArray = false
			arrayElems = nil
			i++
		case c == '/':
			i++
			for i < len(region) && !isContentSpace(region[i]) && !isContentDelim(region[i]) {
				i++
			}
			lastString = ""
		default:
			word, next := readWord(region, i)
			i = next
			switch word {
			case "Tj", "'", "\"":
				if lastString != "" {
					dst = append(dst, lastString)
				}
				lastString = ""
			case "TJ":
				if haveClosed {
					dst = append(dst, closed...)
				}
			}
			if word != "TJ" {
				haveClosed = false
			}
			// Any intervening token breaks string/operator adjacency.
			lastString = ""
		}
	}
	return dst
}

// readLiteralToken reads a balanced ( ... ) literal string starting at
// region[start] and returns the raw token including delimiters. Unbalanced
// input runs to end of region.
func readLiteralToken(region []byte, start int) (string, int) {
	depth := 0
	i := start
	for i < len(region) {
		switch region[i] {
		case '\\':
			i++ // skip the escaped character
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return string(region[start : i+1]), i + 1
			}
		}
		i++
	}
	return string(region[start:]), i
}

// readHexToken reads a < ... > hex string starting at region[start].
func readHexToken(region []byte, start int) (string, int) {
	i := start + 1
	for i < len(region) && region[i] != '>' {
		i++
	}
	if i < len(region) {
		i++ // include the closing angle
	}
	return string(region[start:i]), i
}

func readWord(region []byte, start int) (string, int) {
	i := start
	for i < len(region) && !isContentSpace(region[i]) && !isContentDelim(region[i]) {
		i++
	}
	if i == start {
		i++ // lone delimiter byte, consume it
	}
	return string(region[start:i]), i
}

func isContentSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isContentDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '/', '%':
		return true
	}
	return false
}
