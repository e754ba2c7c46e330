package fetcher

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractGzip streams a gzip decode of srcPath into destDir and returns the
// decompressed file path. The output name is the source name minus its .gz
// suffix. Corrupt input is a retrieval failure.
func ExtractGzip(srcPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrap(err, "gzip: create extract directory")
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return "", eris.Wrap(err, "gzip: open source")
	}
	defer in.Close() //nolint:errcheck

	gz, err := gzip.NewReader(in)
	if err != nil {
		return "", &RetrievalError{Err: eris.Wrap(err, "gzip: read header")}
	}
	defer gz.Close() //nolint:errcheck

	name := strings.TrimSuffix(filepath.Base(srcPath), ".gz")
	destPath := filepath.Join(destDir, name)

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "gzip: create output")
	}

	_, err = io.Copy(out, gz)
	closeErr := out.Close()
	if err != nil {
		_ = os.Remove(destPath)
		return "", &RetrievalError{Err: eris.Wrap(err, "gzip: decompress")}
	}
	if closeErr != nil {
		_ = os.Remove(destPath)
		return "", eris.Wrap(closeErr, "gzip: close output")
	}

	return destPath, nil
}

// ExtractZIPSingle extracts the single file from a ZIP that contains exactly
// one file. Some feed distributions arrive zipped rather than gzipped.
func ExtractZIPSingle(zipPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create extract directory")
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", &RetrievalError{Err: eris.Wrap(err, "zip: open archive")}
	}
	defer r.Close() //nolint:errcheck

	var files []*zip.File
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}

	if len(files) != 1 {
		return "", &RetrievalError{Err: eris.Errorf("zip: expected exactly 1 file, got %d", len(files))}
	}

	return extractZIPEntry(files[0], destDir)
}

// extractZIPEntry extracts a single zip.File to the destination directory.
func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	// Sanitize against zip slip
	destPath := filepath.Join(destDir, filepath.Base(f.Name))
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q", f.Name)
	}

	rc, err := f.Open()
	if err != nil {
		return "", &RetrievalError{Err: eris.Wrap(err, "zip: open entry")}
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}

	_, err = io.Copy(out, rc)
	closeErr := out.Close()
	if err != nil {
		_ = os.Remove(destPath)
		return "", &RetrievalError{Err: eris.Wrap(err, "zip: write file")}
	}
	if closeErr != nil {
		_ = os.Remove(destPath)
		return "", eris.Wrap(closeErr, "zip: close file")
	}

	return destPath, nil
}
