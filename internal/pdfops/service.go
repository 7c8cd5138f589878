// Package pdfops covers the PDF manipulation jobs that only need an
// existing PDF library: merge, split, compress, encrypt, decrypt and
// watermarking, all via pdfcpu over in-memory buffers.
package pdfops

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Service wraps the pdfcpu operations used by the job pipeline.
type Service struct {
	log *slog.Logger
}

// NewService creates a PDF operations service.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log}
}

func (s *Service) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Merge concatenates the input documents in order into one PDF.
func (s *Service) Merge(inputs [][]byte) ([]byte, error) {
	if len(inputs) < 2 {
		return nil, fmt.Errorf("merge needs at least two documents, got %d", len(inputs))
	}
	readers := make([]io.ReadSeeker, len(inputs))
	for i, data := range inputs {
		readers[i] = bytes.NewReader(data)
	}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, s.config()); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out.Bytes(), nil
}

// Split cuts the document into parts of span pages each and bundles the
// parts into a zip archive, one PDF per entry.
func (s *Service) Split(input []byte, span int) ([]byte, error) {
	if span < 1 {
		span = 1
	}
	pages, err := api.PageCount(bytes.NewReader(input), s.config())
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	var bundle bytes.Buffer
	zw := zip.NewWriter(&bundle)
	part := 0
	for start := 1; start <= pages; start += span {
		end := start + span - 1
		if end > pages {
			end = pages
		}
		part++

		var out bytes.Buffer
		sel := []string{fmt.Sprintf("%d-%d", start, end)}
		if err := api.Trim(bytes.NewReader(input), &out, sel, s.config()); err != nil {
			return nil, fmt.Errorf("split pages %d-%d: %w", start, end, err)
		}
		w, err := zw.Create(fmt.Sprintf("part-%03d.pdf", part))
		if err != nil {
			return nil, fmt.Errorf("bundle part %d: %w", part, err)
		}
		if _, err := w.Write(out.Bytes()); err != nil {
			return nil, fmt.Errorf("bundle part %d: %w", part, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close bundle: %w", err)
	}
	return bundle.Bytes(), nil
}

// Compress rewrites the document through pdfcpu's optimizer.
func (s *Service) Compress(input []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(input), &out, s.config()); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	return out.Bytes(), nil
}

// Encrypt protects the document with the given password for both user and
// owner access.
func (s *Service) Encrypt(input []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("encrypt needs a password")
	}
	conf := s.config()
	conf.UserPW = password
	conf.OwnerPW = password
	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(input), &out, conf); err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	return out.Bytes(), nil
}

// Decrypt removes password protection from the document.
func (s *Service) Decrypt(input []byte, password string) ([]byte, error) {
	conf := s.config()
	conf.UserPW = password
	conf.OwnerPW = password
	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(input), &out, conf); err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return out.Bytes(), nil
}

// Watermark stamps the given text diagonally on every page.
func (s *Service) Watermark(input []byte, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("watermark needs text")
	}
	wm, err := api.TextWatermark(text, "scale:0.6, op:0.4", true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermark definition: %w", err)
	}
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(input), &out, nil, wm, s.config()); err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	return out.Bytes(), nil
}
