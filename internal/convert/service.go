// Package convert is the function-call boundary between the job pipeline
// and the extraction/synthesis core: source PDF bytes and a target kind in,
// office package bytes out.
package convert

import (
	"log/slog"

	"github.com/docforge/pdfconvert/internal/extract"
	"github.com/docforge/pdfconvert/internal/office"
)

// Request carries one conversion: the source document bytes and the
// desired output kind.
type Request struct {
	Source []byte
	Kind   office.Kind
}

// Result is the produced office package.
type Result struct {
	Data     []byte
	MIMEType string
	Lines    int
}

// Service performs PDF-to-office conversions. The transformation is pure
// and deterministic, so a Service is safe for concurrent use; all state is
// local to one Convert call.
type Service struct {
	log *slog.Logger
}

// NewService creates a conversion service.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log}
}

// Convert extracts text from the source document and builds the requested
// office package. Individual unreadable objects inside the document are
// skipped silently; only an unreadable source buffer (*ExtractionError) or
// a failed archive assembly (*ArchiveError) surface as errors.
func (s *Service) Convert(req Request) (*Result, error) {
	if len(req.Source) == 0 {
		return nil, &ExtractionError{Reason: "source document is empty"}
	}

	lines := extract.Text(req.Source)
	s.log.Debug("text extracted", "lines", len(lines), "kind", req.Kind)

	data, err := office.Build(req.Kind, lines)
	if err != nil {
		return nil, &ArchiveError{Kind: req.Kind, Err: err}
	}
	return &Result{
		Data:     data,
		MIMEType: req.Kind.MIMEType(),
		Lines:    len(lines),
	}, nil
}
