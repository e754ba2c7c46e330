package fetcher

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// FindLatestFeed scans dir for XML files whose name starts with the feed type
// and returns the most recently modified match. The boolean is false when
// nothing matches; that is not an error.
func FindLatestFeed(feedType, dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, eris.Wrapf(err, "list feed directory %s", dir)
	}

	var best string
	var bestMod int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, strings.ToLower(feedType)) || !strings.HasSuffix(lower, ".xml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best = filepath.Join(dir, name)
			bestMod = mod
		}
	}

	if best == "" {
		return "", false, nil
	}
	return best, true, nil
}

// Service composes retrieval and decompression over configured working
// directories.
type Service struct {
	http        Fetcher
	ftp         Fetcher
	downloadDir string
	extractDir  string
}

// NewService creates a retrieval service. The FTP fetcher may be nil when
// only HTTP sources are configured.
func NewService(httpF, ftpF Fetcher, downloadDir, extractDir string) *Service {
	return &Service{http: httpF, ftp: ftpF, downloadDir: downloadDir, extractDir: extractDir}
}

// DownloadFile streams the URL into the download directory and returns the
// local path.
func (s *Service) DownloadFile(ctx context.Context, rawURL string) (string, error) {
	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return "", eris.Wrap(err, "create download directory")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &RetrievalError{Err: eris.Wrap(err, "parse url")}
	}

	f := s.http
	if u.Scheme == "ftp" {
		if s.ftp == nil {
			return "", &RetrievalError{Err: eris.New("ftp source configured without ftp fetcher")}
		}
		f = s.ftp
	}

	name := filepath.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = "feed.xml"
	}
	dest := filepath.Join(s.downloadDir, name)

	n, err := f.DownloadToFile(ctx, rawURL, dest)
	if err != nil {
		return "", err
	}

	zap.L().Info("feed downloaded",
		zap.String("url", rawURL),
		zap.String("path", dest),
		zap.Int64("bytes", n),
	)
	return dest, nil
}

// DownloadAndExtract downloads the URL and, when compressed, decompresses it
// into the extract directory. Returns the path of the ready-to-parse file.
func (s *Service) DownloadAndExtract(ctx context.Context, rawURL string, compressed bool) (string, error) {
	path, err := s.DownloadFile(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !compressed {
		return path, nil
	}
	return s.Extract(path)
}

// Extract decompresses the local file into the extract directory, choosing
// gzip or single-file ZIP by extension.
func (s *Service) Extract(path string) (string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return ExtractZIPSingle(path, s.extractDir)
	}
	return ExtractGzip(path, s.extractDir)
}
