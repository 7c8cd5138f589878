package extract

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
)

// DecodeStream returns the decoded bytes of a stream body according to the
// filter declared in its dictionary text.
//
// Streams without a /Filter key are returned unchanged (uncompressed content
// streams). /FlateDecode streams are inflated as zlib first and as raw
// deflate second, since some producers omit the zlib header. Any other
// filter carries image or font data rather than text, so the raw bytes are
// passed through for the tokenizer to (harmlessly) find nothing in.
//
// Filter arrays and decode parameters are not handled; only the presence of
// the /FlateDecode name is inspected.
func DecodeStream(dict, raw []byte) ([]byte, error) {
	if !bytes.Contains(dict, []byte("/Filter")) {
		return raw, nil
	}
	if !bytes.Contains(dict, []byte("/FlateDecode")) {
		return raw, nil
	}

	if decoded, err := inflateZlib(raw); err == nil {
		return decoded, nil
	}
	decoded, err := inflateRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("flate stream did not inflate as zlib or raw deflate: %w", err)
	}
	return decoded, nil
}

func inflateZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func inflateRaw(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
