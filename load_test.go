package sift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc, err := Parse("<p>hi</p>")
	require.NoError(t, err)
	require.False(t, doc.IsNull())

	text, err := doc.Find("p").Text().Str()
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = ParseBytes(make([]byte, MaxHTMLSize+1))
	assert.Error(t, err)
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader("<b>bold</b>"))
	require.NoError(t, err)

	text, err := doc.Find("b").Text().Str()
	require.NoError(t, err)
	assert.Equal(t, "bold", text)
}

func TestDetectCharset(t *testing.T) {
	// Detection never fails hard; unknown input defaults to utf-8.
	got := DetectCharset([]byte{})
	assert.NotEmpty(t, got)

	got = DetectCharset([]byte("<html><body>plain ascii text for detection</body></html>"))
	assert.NotEmpty(t, got)
}

func TestParseKeepsUTF8Text(t *testing.T) {
	doc, err := Parse("<p>héllo wörld ünïcode</p>")
	require.NoError(t, err)

	text, err := doc.Find("p").Text().Str()
	require.NoError(t, err)
	assert.Contains(t, text, "héllo")
}
