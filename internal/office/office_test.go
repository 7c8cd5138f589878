package office

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readArchive unpacks a built package into path -> content for assertions.
func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = string(content)
	}
	return parts
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"word", "powerpoint", "excel"} {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, string(k))
	}
	_, err := ParseKind("pdf")
	assert.Error(t, err)
}

func TestKindMIMEType(t *testing.T) {
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", KindWord.MIMEType())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.presentationml.presentation", KindPowerPoint.MIMEType())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", KindExcel.MIMEType())
}

func TestKindExtension(t *testing.T) {
	assert.Equal(t, ".docx", KindWord.Extension())
	assert.Equal(t, ".pptx", KindPowerPoint.Extension())
	assert.Equal(t, ".xlsx", KindExcel.Extension())
}

func TestBuild(t *testing.T) {
	t.Run("UnknownKind", func(t *testing.T) {
		_, err := Build(Kind("odt"), []string{"line"})
		assert.Error(t, err)
	})

	t.Run("CommonStructure", func(t *testing.T) {
		for _, kind := range []Kind{KindWord, KindPowerPoint, KindExcel} {
			data, err := Build(kind, []string{"one line", "two line"})
			require.NoError(t, err)
			parts := readArchive(t, data)
			assert.Contains(t, parts, "[Content_Types].xml", "kind %s", kind)
			assert.Contains(t, parts, "_rels/.rels", "kind %s", kind)
			assert.Contains(t, parts, "docProps/core.xml", "kind %s", kind)
			assert.Contains(t, parts, "docProps/app.xml", "kind %s", kind)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		lines := []string{"alpha", "beta", "gamma"}
		for _, kind := range []Kind{KindWord, KindPowerPoint, KindExcel} {
			first, err := Build(kind, lines)
			require.NoError(t, err)
			second, err := Build(kind, lines)
			require.NoError(t, err)
			assert.Equal(t, first, second, "kind %s", kind)
		}
	})

	t.Run("EmptyLinesSubstituteSentinel", func(t *testing.T) {
		data, err := Build(KindWord, nil)
		require.NoError(t, err)
		parts := readArchive(t, data)
		assert.Contains(t, parts["word/document.xml"], "No extractable text was found in this PDF.")
	})
}

func TestColumnLettersMath(t *testing.T) {
	assert.Equal(t, "A", ColumnLetters(0))
	assert.Equal(t, "B", ColumnLetters(1))
	assert.Equal(t, "Z", ColumnLetters(25))
	assert.Equal(t, "AA", ColumnLetters(26))
	assert.Equal(t, "AB", ColumnLetters(27))
	assert.Equal(t, "AZ", ColumnLetters(51))
	assert.Equal(t, "BA", ColumnLetters(52))
	assert.Equal(t, "ZZ", ColumnLetters(701))
	assert.Equal(t, "AAA", ColumnLetters(702))
}
