// Package office assembles minimal, schema-valid OOXML containers
// (Word, PowerPoint, Excel) from extracted text lines.
//
// Each part is a small typed builder rather than a bag of string templates,
// so a container's content-types manifest, relationship parts and entry set
// cannot drift apart: registering a part does all its bookkeeping at once.
package office

import "fmt"

// Kind selects the output document format.
type Kind string

const (
	KindWord       Kind = "word"
	KindPowerPoint Kind = "powerpoint"
	KindExcel      Kind = "excel"
)

// ParseKind maps a user-supplied format name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindWord, KindPowerPoint, KindExcel:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown output kind %q (want word, powerpoint or excel)", s)
}

// MIMEType returns the OOXML media type for the kind.
func (k Kind) MIMEType() string {
	switch k {
	case KindWord:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case KindPowerPoint:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case KindExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return ""
}

// Extension returns the conventional file extension for the kind.
func (k Kind) Extension() string {
	switch k {
	case KindWord:
		return ".docx"
	case KindPowerPoint:
		return ".pptx"
	case KindExcel:
		return ".xlsx"
	}
	return ""
}

// Build produces the compressed OOXML package of the given kind from the
// text lines. An empty line sequence is replaced with the single sentinel
// line so that the output document is always structurally valid and
// non-empty.
func Build(kind Kind, lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{emptyDocumentLine}
	}
	switch kind {
	case KindWord:
		return buildWord(lines)
	case KindPowerPoint:
		return buildPowerPoint(lines)
	case KindExcel:
		return buildExcel(lines)
	}
	return nil, fmt.Errorf("unknown output kind %q", kind)
}

// emptyDocumentLine mirrors the extraction sentinel; the builder applies it
// independently so it never emits an empty document even when called
// directly.
const emptyDocumentLine = "No extractable text was found in this PDF."
