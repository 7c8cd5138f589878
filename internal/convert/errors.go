package convert

import (
	"fmt"

	"github.com/docforge/pdfconvert/internal/office"
)

// ExtractionError reports that the source buffer could not be read at all.
// It is never raised merely because no text was found; that case degrades
// to the sentinel line.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// ArchiveError reports that office-package assembly could not produce a
// well-formed archive.
type ArchiveError struct {
	Kind office.Kind
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("building %s archive failed: %v", e.Kind, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}
