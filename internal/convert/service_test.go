package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docforge/pdfconvert/internal/office"
)

func archivePart(t *testing.T, data []byte, path string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != path {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		return string(content)
	}
	t.Fatalf("archive has no part %s", path)
	return ""
}

const invoicePDF = "%PDF-1.4\n" +
	"1 0 obj\n<< /Length 31 >>\nstream\n" +
	"BT /F1 12 Tf (Invoice 42) Tj ET\n" +
	"endstream\nendobj\n%%EOF\n"

func TestConvert(t *testing.T) {
	svc := NewService(nil)

	t.Run("MinimalPDFToWord", func(t *testing.T) {
		res, err := svc.Convert(Request{Source: []byte(invoicePDF), Kind: office.KindWord})
		require.NoError(t, err)
		assert.Equal(t, office.KindWord.MIMEType(), res.MIMEType)
		assert.Equal(t, 1, res.Lines)

		doc := archivePart(t, res.Data, "word/document.xml")
		assert.Equal(t, 1, strings.Count(doc, "<w:p>"))
		assert.Contains(t, doc, ">Invoice 42</w:t>")
	})

	t.Run("HeaderOnlyToSentinelWord", func(t *testing.T) {
		res, err := svc.Convert(Request{Source: []byte("%PDF"), Kind: office.KindWord})
		require.NoError(t, err)

		doc := archivePart(t, res.Data, "word/document.xml")
		assert.Equal(t, 1, strings.Count(doc, "<w:p>"))
		assert.Contains(t, doc, "No extractable text was found in this PDF.")
	})

	t.Run("EmptySourceIsExtractionError", func(t *testing.T) {
		_, err := svc.Convert(Request{Source: nil, Kind: office.KindWord})
		require.Error(t, err)
		var extErr *ExtractionError
		assert.True(t, errors.As(err, &extErr))
	})

	t.Run("UnknownKindIsArchiveError", func(t *testing.T) {
		_, err := svc.Convert(Request{Source: []byte(invoicePDF), Kind: office.Kind("odt")})
		require.Error(t, err)
		var arcErr *ArchiveError
		assert.True(t, errors.As(err, &arcErr))
	})

	t.Run("Idempotent", func(t *testing.T) {
		for _, kind := range []office.Kind{office.KindWord, office.KindPowerPoint, office.KindExcel} {
			first, err := svc.Convert(Request{Source: []byte(invoicePDF), Kind: kind})
			require.NoError(t, err)
			second, err := svc.Convert(Request{Source: []byte(invoicePDF), Kind: kind})
			require.NoError(t, err)
			assert.Equal(t, first.Data, second.Data, "kind %s", kind)
		}
	})

	t.Run("AllThreeKinds", func(t *testing.T) {
		for _, kind := range []office.Kind{office.KindWord, office.KindPowerPoint, office.KindExcel} {
			res, err := svc.Convert(Request{Source: []byte(invoicePDF), Kind: kind})
			require.NoError(t, err)
			assert.Equal(t, kind.MIMEType(), res.MIMEType, "kind %s", kind)
			assert.NotEmpty(t, res.Data, "kind %s", kind)
		}
	})
}
