package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxBytes = 1 << 20

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", "<html><body>hi</body></html>")

	r := NewResolver(nil, nil, maxBytes)
	docs, err := r.Resolve(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, path, docs[0].Name)
	assert.Contains(t, string(docs[0].Data), "hi")
}

func TestResolveStdin(t *testing.T) {
	r := NewResolver(nil, nil, maxBytes)
	r.stdin = strings.NewReader("<p>from stdin</p>")

	docs, err := r.Resolve(context.Background(), []string{"-"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "stdin", docs[0].Name)
	assert.Equal(t, "<p>from stdin</p>", string(docs[0].Data))
}

func TestResolveGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/one.html", "<html>1</html>")
	writeFile(t, dir, "a/b/two.html", "<html>2</html>")
	writeFile(t, dir, "a/b/skip.txt", "\x00\x01binary")

	r := NewResolver(nil, nil, maxBytes)
	docs, err := r.Resolve(context.Background(), []string{filepath.Join(dir, "**/*.html")})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.html", "<html>1</html>")
	writeFile(t, dir, "nested/two.html", "<html>2</html>")
	writeFile(t, dir, "nested/image.png", "\x89PNG\r\n\x1a\n000000")

	r := NewResolver(nil, nil, maxBytes)
	docs, err := r.Resolve(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, docs, 2, "binary file must be skipped")

	// Deterministic order regardless of walk concurrency.
	assert.True(t, docs[0].Name < docs[1].Name)
}

func TestResolveGzip(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("<html><body>zipped</body></html>"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(dir, "page.html.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r := NewResolver(nil, nil, maxBytes)
	docs, err := r.Resolve(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, string(docs[0].Data), "zipped")
}

func TestResolveOversizedSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.html", "<html>"+strings.Repeat("x", 256)+"</html>")

	r := NewResolver(nil, nil, 16)
	docs, err := r.Resolve(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestResolveMissingFile(t *testing.T) {
	r := NewResolver(nil, nil, maxBytes)
	_, err := r.Resolve(context.Background(), []string{"/no/such/file.html"})
	assert.Error(t, err)
}

func TestResolveRemoteWithoutFetcher(t *testing.T) {
	r := NewResolver(nil, nil, maxBytes)
	_, err := r.Resolve(context.Background(), []string{"https://example.com"})
	assert.Error(t, err)
}
