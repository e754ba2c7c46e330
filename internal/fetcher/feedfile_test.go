package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("<Records/>"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestFindLatestFeed(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	touch(t, filepath.Join(dir, "full_20260801.xml"), now.Add(-48*time.Hour))
	touch(t, filepath.Join(dir, "full_20260829.xml"), now.Add(-1*time.Hour))
	touch(t, filepath.Join(dir, "delta_20260830.xml"), now)
	touch(t, filepath.Join(dir, "full_notes.txt"), now)

	path, ok, err := FindLatestFeed("full", dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "full_20260829.xml", filepath.Base(path))
}

func TestFindLatestFeed_NoMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "delta_20260830.xml"), time.Now())

	_, ok, err := FindLatestFeed("incremental", dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindLatestFeed_MissingDir(t *testing.T) {
	_, _, err := FindLatestFeed("full", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestServiceDownloadAndExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<Records/>"))
	}))
	defer srv.Close()

	base := t.TempDir()
	svc := NewService(newTestFetcher(), nil, filepath.Join(base, "dl"), filepath.Join(base, "ex"))

	path, err := svc.DownloadAndExtract(context.Background(), srv.URL+"/full_feed.xml", false)
	require.NoError(t, err)
	assert.Equal(t, "full_feed.xml", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<Records/>", string(data))
}
