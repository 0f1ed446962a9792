package data

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stylegrid/internal/model"
)

// DefaultLibraryBaseURL is the Ken French data library download root.
const DefaultLibraryBaseURL = "https://mba.tuck.dartmouth.edu/pages/faculty/ken.french/ftp"

// browserUserAgent is sent on every library request. The upstream server
// rejects requests without a browser-like user-agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// LibraryClient fetches zipped CSV exports from the Ken French data library.
type LibraryClient struct {
	BaseURL string
	Client  *http.Client
}

// NewLibraryClient creates a library client.
// If baseURL is empty, defaults to DefaultLibraryBaseURL.
func NewLibraryClient(baseURL string) *LibraryClient {
	if baseURL == "" {
		baseURL = DefaultLibraryBaseURL
	}
	return &LibraryClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchCSV downloads <BaseURL>/<archive> and extracts the single CSV file the
// archive contains. Network errors, non-2xx statuses and malformed archives
// all surface as *model.SourceError so callers can fall back.
func (c *LibraryClient) FetchCSV(archive string) ([]byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + "/" + archive

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", u, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "*/*")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &model.SourceError{
			Source:  archive,
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	log.Debug().Str("archive", archive).Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).Msg("library response")

	if resp.StatusCode != http.StatusOK {
		return nil, &model.SourceError{
			Source:     archive,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("library returned %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.SourceError{
			Source:  archive,
			Message: "read body",
			Err:     err,
		}
	}

	return extractSingleCSV(archive, body)
}

// extractSingleCSV opens a zip archive expected to contain exactly one CSV.
func extractSingleCSV(archive string, body []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, &model.SourceError{
			Source:  archive,
			Message: "not a zip archive",
			Err:     err,
		}
	}

	var file *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			if file != nil {
				return nil, &model.SourceError{
					Source:  archive,
					Message: "archive contains more than one CSV",
				}
			}
			file = f
		}
	}
	if file == nil {
		return nil, &model.SourceError{
			Source:  archive,
			Message: "archive contains no CSV",
		}
	}

	rc, err := file.Open()
	if err != nil {
		return nil, &model.SourceError{
			Source:  archive,
			Message: fmt.Sprintf("open %s", file.Name),
			Err:     err,
		}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, &model.SourceError{
			Source:  archive,
			Message: fmt.Sprintf("extract %s", file.Name),
			Err:     err,
		}
	}
	return raw, nil
}

// RemoteSource fetches one library archive and normalizes it.
type RemoteSource struct {
	Client   *LibraryClient
	Archive  string   // e.g. "25_Portfolios_5x5_CSV.zip"
	Keywords []string // header-identifying keywords
}

func (s *RemoteSource) Key() string { return "remote:" + s.Archive }

func (s *RemoteSource) Describe() string {
	return fmt.Sprintf("Ken French library archive %s", s.Archive)
}

func (s *RemoteSource) Fetch() (*model.RawTable, error) {
	raw, err := s.Client.FetchCSV(s.Archive)
	if err != nil {
		return nil, err
	}
	return ParseTable(bytes.NewReader(raw), s.Key(), s.Keywords)
}
