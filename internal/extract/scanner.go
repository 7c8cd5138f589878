package extract

import (
	"bytes"
	"regexp"
)

// ObjectSpan is a located candidate indirect object: the dictionary text
// between the "N G obj" marker and the stream keyword, and the raw stream
// bytes between the stream/endstream keywords.
type ObjectSpan struct {
	Dict   []byte
	Stream []byte
}

var objMarker = regexp.MustCompile(`\d+\s+\d+\s+obj\b`)

// keywords inside object bodies
var (
	endObjKeyword    = []byte("endobj")
	streamKeyword    = []byte("stream")
	endStreamKeyword = []byte("endstream")
)

// ObjectScanner walks a raw PDF buffer and yields one ObjectSpan per
// indirect object that carries a stream region. No object graph or
// cross-reference table is consulted; spans come back in physical byte
// order. The scanner holds only an offset into the immutable buffer, so
// restarting is just creating a new one.
type ObjectScanner struct {
	data []byte
	pos  int
}

// NewObjectScanner creates a scanner over data. The buffer is not copied
// and must not be mutated while the scanner is in use.
func NewObjectScanner(data []byte) *ObjectScanner {
	return &ObjectScanner{data: data}
}

// Next returns the next object span with a stream region, or false when the
// buffer is exhausted. Malformed objects (missing endobj, stream without
// endstream) are skipped.
func (s *ObjectScanner) Next() (ObjectSpan, bool) {
	for s.pos < len(s.data) {
		loc := objMarker.FindIndex(s.data[s.pos:])
		if loc == nil {
			s.pos = len(s.data)
			return ObjectSpan{}, false
		}

		bodyStart := s.pos + loc[1]
		endIdx := bytes.Index(s.data[bodyStart:], endObjKeyword)
		if endIdx < 0 {
			// No matching endobj; skip past the marker and keep looking.
			s.pos += loc[1]
			continue
		}
		body := s.data[bodyStart : bodyStart+endIdx]
		s.pos = bodyStart + endIdx + len(endObjKeyword)

		span, ok := splitStream(body)
		if !ok {
			continue
		}
		return span, true
	}
	return ObjectSpan{}, false
}

// splitStream separates an object body into dictionary text and raw stream
// bytes. Objects without a stream region report !ok.
func splitStream(body []byte) (ObjectSpan, bool) {
	streamIdx := bytes.Index(body, streamKeyword)
	if streamIdx < 0 {
		return ObjectSpan{}, false
	}
	dict := body[:streamIdx]

	raw := body[streamIdx+len(streamKeyword):]
	// The stream keyword is followed by exactly one line terminator.
	switch {
	case bytes.HasPrefix(raw, []byte("\r\n")):
		raw = raw[2:]
	case len(raw) > 0 && (raw[0] == '\n' || raw[0] == '\r'):
		raw = raw[1:]
	}

	endIdx := bytes.Index(raw, endStreamKeyword)
	if endIdx < 0 {
		return ObjectSpan{}, false
	}
	raw = raw[:endIdx]

	// Trailing line-terminator bytes before endstream are not stream data.
	for len(raw) > 0 && (raw[len(raw)-1] == '\n' || raw[len(raw)-1] == '\r') {
		raw = raw[:len(raw)-1]
	}

	return ObjectSpan{Dict: dict, Stream: raw}, true
}

// ScanObjects collects all stream-bearing object spans in data.
func ScanObjects(data []byte) []ObjectSpan {
	var spans []ObjectSpan
	sc := NewObjectScanner(data)
	for {
		span, ok := sc.Next()
		if !ok {
			return spans
		}
		spans = append(spans, span)
	}
}
