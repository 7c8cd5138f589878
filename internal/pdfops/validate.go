package pdfops

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var pdfHeader = []byte("%PDF-")

// IsPDF reports whether data starts with a PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}

// PageCount opens the document and returns its page count. Used as a cheap
// pre-queue sanity check on uploads. The pdf library panics on some
// malformed cross-reference tables, so panics are converted to errors.
func PageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return r.NumPage(), nil
}

// Validate checks that data looks like a readable PDF. Structural damage
// beyond the header is tolerated for conversion jobs, which have their own
// best-effort scanner, but operations delegated to pdfcpu need a document
// the library can open.
func Validate(data []byte, strict bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty document")
	}
	if !IsPDF(data) {
		return fmt.Errorf("missing %%PDF- header")
	}
	if !strict {
		return nil
	}
	if _, err := PageCount(data); err != nil {
		return err
	}
	return nil
}
