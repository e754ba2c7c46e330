// Package fetcher retrieves feed files over HTTP(S) and FTP and decompresses
// them into the local working directories.
package fetcher

import (
	"context"
	"errors"
	"io"
)

// Fetcher defines the interface for downloading remote feed data.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// RetrievalError marks a download or decompression failure. Retrieval
// failures are fatal to a run; there is no degraded mode.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return "retrieval: " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// IsRetrieval reports whether err has a RetrievalError in its chain.
func IsRetrieval(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}
