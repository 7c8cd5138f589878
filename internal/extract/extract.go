// Package extract recovers readable text from raw PDF bytes without a
// general-purpose PDF library.
//
// The pipeline is a chain of pure functions: ScanObjects locates indirect
// objects with stream bodies by their textual markers, DecodeStream
// inflates declared FlateDecode filters, ShowTokens pulls the string
// operands of text-showing operators out of each content stream,
// DecodeToken turns raw tokens into text fragments, and NormalizeLines
// produces the final bounded, deduplicated line sequence. No object graph,
// cross-reference table or page tree is built; text comes back in physical
// object order, an accepted approximation of reading order.
package extract

// Text extracts the normalized text lines of a PDF document. Objects that
// fail to decode are skipped; the result is never empty for any input (the
// sentinel line covers documents with no recoverable text).
func Text(data []byte) []string {
	var fragments []string
	sc := NewObjectScanner(data)
	for {
		span, ok := sc.Next()
		if !ok {
			break
		}
		decoded, err := DecodeStream(span.Dict, span.Stream)
		if err != nil {
			// Broken stream, likely corrupt compression. Skip the object.
			continue
		}
		for _, tok := range ShowTokens(decoded) {
			if s := DecodeToken(tok); s != "" {
				fragments = append(fragments, s)
			}
		}
	}
	return NormalizeLines(fragments, data)
}
