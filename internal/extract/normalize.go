package extract

import (
	"regexp"
	"strings"
)

// SentinelLine is substituted when a document yields no text at all, so the
// downstream package builder always has something to emit.
const SentinelLine = "No extractable text was found in this PDF."

// MaxLines bounds the normalized line count per document.
const MaxLines = 600

const minFragmentLen = 2

// Runs of whitespace other than tab collapse to a single space; tabs are
// kept because they later act as column delimiters in spreadsheet output.
var spaceRun = regexp.MustCompile(`[^\S\t]+`)

// Fallback scan: runs of at least 6 printable bytes anywhere in the raw
// document.
var printableRun = regexp.MustCompile(`[\x20-\x7E\t]{6,}`)

// NormalizeLines turns the ordered fragment sequence of a document into the
// final bounded line sequence. When the fragments clean down to nothing
// (image-only documents, unsupported filters throughout), the raw document
// bytes are rescanned coarsely for printable runs; if even that yields
// nothing the sentinel line is returned, so the result is never empty.
func NormalizeLines(fragments []string, raw []byte) []string {
	lines := cleanLines(fragments)
	if len(lines) == 0 {
		lines = cleanLines(fallbackFragments(raw))
	}
	if len(lines) == 0 {
		return []string{SentinelLine}
	}
	return lines
}

// cleanLines applies the clean/dedupe/limit rule: collapse whitespace,
// strip non-printable characters, trim, drop short or symbol-only
// fragments, dedupe case-insensitively keeping the first occurrence and its
// casing, and cap at MaxLines.
func cleanLines(fragments []string) []string {
	var lines []string
	seen := make(map[string]struct{}, len(fragments))
	for _, frag := range fragments {
		line, ok := CleanLine(frag)
		if !ok {
			continue
		}
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		lines = append(lines, line)
		if len(lines) == MaxLines {
			break
		}
	}
	return lines
}

// CleanLine normalizes a single fragment. The second return is false when
// the fragment cleans down to something too short or without any
// alphanumeric character.
func CleanLine(frag string) (string, bool) {
	s := spaceRun.ReplaceAllString(frag, " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || (r >= 0x20 && r <= 0x7E) {
			b.WriteRune(r)
		}
	}
	s = strings.Trim(b.String(), " \t")

	if len(s) < minFragmentLen || !containsAlnum(s) {
		return "", false
	}
	return s, true
}

func containsAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

func fallbackFragments(raw []byte) []string {
	runs := printableRun.FindAll(raw, -1)
	fragments := make([]string, 0, len(runs))
	for _, r := range runs {
		fragments = append(fragments, string(r))
	}
	return fragments
}
