package extract

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func rawDeflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecodeStream(t *testing.T) {
	content := []byte("BT (Hello) Tj ET")

	t.Run("NoFilterPassThrough", func(t *testing.T) {
		out, err := DecodeStream([]byte("<< /Length 16 >>"), content)
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("ZlibFlate", func(t *testing.T) {
		out, err := DecodeStream([]byte("<< /Filter /FlateDecode >>"), zlibCompress(t, content))
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("HeaderlessFlateFallback", func(t *testing.T) {
		out, err := DecodeStream([]byte("<< /Filter /FlateDecode >>"), rawDeflate(t, content))
		require.NoError(t, err)
		assert.Equal(t, content, out)
	})

	t.Run("CorruptFlateErrors", func(t *testing.T) {
		_, err := DecodeStream([]byte("<< /Filter /FlateDecode >>"), []byte{0xff, 0xfe, 0x00, 0x01})
		assert.Error(t, err)
	})

	t.Run("OtherFilterPassThrough", func(t *testing.T) {
		raw := []byte{0x01, 0x02, 0x03}
		out, err := DecodeStream([]byte("<< /Filter /DCTDecode >>"), raw)
		require.NoError(t, err)
		assert.Equal(t, raw, out)
	})
}
