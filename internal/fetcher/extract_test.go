package fetcher

import (
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(content)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractGzip(t *testing.T) {
	dir := t.TempDir()
	src := writeGzip(t, dir, "full_20260830.xml.gz", []byte("<Records/>"))

	out, err := ExtractGzip(src, filepath.Join(dir, "extract"))
	require.NoError(t, err)
	assert.Equal(t, "full_20260830.xml", filepath.Base(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<Records/>", string(data))
}

func TestExtractGzip_Corrupt(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.xml.gz")
	require.NoError(t, os.WriteFile(src, []byte("this is not gzip"), 0o644))

	_, err := ExtractGzip(src, filepath.Join(dir, "extract"))
	require.Error(t, err)
	assert.True(t, IsRetrieval(err))
}

func TestExtractZIPSingle(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "feed.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("delta_20260830.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<Records></Records>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	out, err := ExtractZIPSingle(zipPath, filepath.Join(dir, "extract"))
	require.NoError(t, err)
	assert.Equal(t, "delta_20260830.xml", filepath.Base(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<Records></Records>", string(data))
}

func TestExtractZIPSingle_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "feed.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"a.xml", "b.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ExtractZIPSingle(zipPath, filepath.Join(dir, "extract"))
	require.Error(t, err)
}
