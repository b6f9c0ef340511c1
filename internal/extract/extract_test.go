package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromExtension(t *testing.T) {
	kind, ok := KindFromExtension("pdf")
	require.True(t, ok)
	assert.Equal(t, KindPDF, kind)

	kind, ok = KindFromExtension("TXT")
	require.True(t, ok)
	assert.Equal(t, KindText, kind)

	_, ok = KindFromExtension("docx")
	assert.False(t, ok)
}

func TestExtractUTF8Text(t *testing.T) {
	text, err := Extract([]byte("plain utf-8 내용"), KindText)
	require.NoError(t, err)
	assert.Equal(t, "plain utf-8 내용", text)
}

func TestExtractEUCKRText(t *testing.T) {
	// "한글" encoded as EUC-KR, which is not valid UTF-8.
	data := []byte{0xC7, 0xD1, 0xB1, 0xDB}
	text, err := Extract(data, KindText)
	require.NoError(t, err)
	assert.Equal(t, "한글", text)
}

func TestExtractUnknownKind(t *testing.T) {
	_, err := Extract([]byte("x"), FileKind("docx"))
	require.Error(t, err)
}

func TestExtractBrokenPDF(t *testing.T) {
	_, err := Extract([]byte("not a pdf"), KindPDF)
	require.Error(t, err)
}
